package controllers

import (
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type LikeController struct{ Svc *services.LikeService }

func NewLikeController(s *services.LikeService) *LikeController { return &LikeController{Svc: s} }

// POST /like/:materialId
func (h *LikeController) Toggle(c *gin.Context) {
	mid, ok := utils.ParamID(c, "materialId")
	if !ok {
		resp.BadRequest(c, "invalid material id")
		return
	}
	liked, err := h.Svc.Toggle(utils.CurrentUserID(c), mid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	msg := "Unliked"
	if liked {
		msg = "Liked"
	}
	resp.OK(c, gin.H{"liked": liked, "message": msg})
}

// GET /like
func (h *LikeController) ListMine(c *gin.Context) {
	list, err := h.Svc.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}
