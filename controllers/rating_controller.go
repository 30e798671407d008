package controllers

import (
	"strconv"

	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type RatingController struct{ Svc *services.RatingService }

func NewRatingController(s *services.RatingService) *RatingController {
	return &RatingController{Svc: s}
}

// POST /rating/:materialId
func (h *RatingController) Rate(c *gin.Context) {
	mid, ok := utils.ParamID(c, "materialId")
	if !ok {
		resp.BadRequest(c, "invalid material id")
		return
	}
	var in services.RateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rt, err := h.Svc.Rate(utils.CurrentUserID(c), mid, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rt)
}

// GET /rating/material/:materialId
func (h *RatingController) ListForMaterial(c *gin.Context) {
	mid, ok := utils.ParamID(c, "materialId")
	if !ok {
		resp.BadRequest(c, "invalid material id")
		return
	}
	list, err := h.Svc.ListForMaterial(mid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /rating/material/:materialId/stats
func (h *RatingController) Stats(c *gin.Context) {
	mid, ok := utils.ParamID(c, "materialId")
	if !ok {
		resp.BadRequest(c, "invalid material id")
		return
	}
	st, err := h.Svc.Stats(mid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// GET /rating/my/:materialId
func (h *RatingController) Mine(c *gin.Context) {
	mid, ok := utils.ParamID(c, "materialId")
	if !ok {
		resp.BadRequest(c, "invalid material id")
		return
	}
	rt, err := h.Svc.MyRating(utils.CurrentUserID(c), mid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rt)
}

// GET /rating/my
func (h *RatingController) AllMine(c *gin.Context) {
	list, err := h.Svc.MyRatings(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// DELETE /rating/:materialId
func (h *RatingController) Delete(c *gin.Context) {
	mid, ok := utils.ParamID(c, "materialId")
	if !ok {
		resp.BadRequest(c, "invalid material id")
		return
	}
	if err := h.Svc.Delete(utils.CurrentUserID(c), mid); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Rating deleted successfully"})
}

// GET /rating/top?limit=
func (h *RatingController) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.Svc.TopRated(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}
