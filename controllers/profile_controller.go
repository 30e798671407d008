package controllers

import (
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct{ Svc *services.ProfileService }

func NewProfileController(s *services.ProfileService) *ProfileController {
	return &ProfileController{Svc: s}
}

// GET /profile
func (h *ProfileController) Get(c *gin.Context) {
	u, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

// PUT /profile
func (h *ProfileController) Update(c *gin.Context) {
	var in services.ProfileUpdateIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.Svc.Update(utils.CurrentUserID(c), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, u)
}

// DELETE /profile
func (h *ProfileController) Delete(c *gin.Context) {
	if err := h.Svc.Delete(utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Account deleted successfully"})
}

// GET /profile/stats
func (h *ProfileController) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, st)
}

// GET /profile/admin/users
func (h *ProfileController) ListUsers(c *gin.Context) {
	list, err := h.Svc.ListUsers()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}
