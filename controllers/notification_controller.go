package controllers

import (
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type NotificationController struct{ Svc *services.NotificationService }

func NewNotificationController(s *services.NotificationService) *NotificationController {
	return &NotificationController{Svc: s}
}

// POST /notification (admin)
func (h *NotificationController) Create(c *gin.Context) {
	var req services.NotificationIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.UserID == 0 {
		req.UserID = utils.CurrentUserID(c)
	}
	n, err := h.Svc.Create(req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, n)
}

// GET /notification
func (h *NotificationController) List(c *gin.Context) {
	list, err := h.Svc.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// PATCH /notification/:id/read
func (h *NotificationController) MarkRead(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	n, err := h.Svc.MarkReadForUser(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, n)
}

// PATCH /notification/read-all
func (h *NotificationController) MarkAllRead(c *gin.Context) {
	count, err := h.Svc.MarkAllRead(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"count": count})
}
