package controllers

import (
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type supportMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type SupportController struct{ Svc *services.SupportService }

func NewSupportController(s *services.SupportService) *SupportController {
	return &SupportController{Svc: s}
}

// POST /support
func (h *SupportController) Send(c *gin.Context) {
	var req supportMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := h.Svc.Send(utils.CurrentUserID(c), req.Message)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, m)
}

// GET /support
func (h *SupportController) Mine(c *gin.Context) {
	list, err := h.Svc.Messages(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /support/admin/conversations
func (h *SupportController) Conversations(c *gin.Context) {
	list, err := h.Svc.Conversations()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /support/admin/:userId
func (h *SupportController) ForUser(c *gin.Context) {
	uid, ok := utils.ParamID(c, "userId")
	if !ok {
		resp.BadRequest(c, "invalid user id")
		return
	}
	list, err := h.Svc.Messages(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// POST /support/admin/:userId
func (h *SupportController) Reply(c *gin.Context) {
	uid, ok := utils.ParamID(c, "userId")
	if !ok {
		resp.BadRequest(c, "invalid user id")
		return
	}
	var req supportMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := h.Svc.Reply(uid, req.Message)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, m)
}
