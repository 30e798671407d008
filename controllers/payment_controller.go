package controllers

import (
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: s}
}

// POST /payment/initialize
func (h *PaymentController) Initialize(c *gin.Context) {
	var body struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Initialize(c.Request.Context(), body.OrderID, utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /payment/verify/:id?tx_ref=
// Called by the provider and by the storefront after redirect. The payload
// carries its own status, so the HTTP status stays 200.
func (h *PaymentController) Verify(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	out, err := h.Svc.Verify(c.Request.Context(), id, c.Query("tx_ref"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
