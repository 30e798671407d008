package controllers

import (
	"bytes"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /order/checkout
func (h *OrderController) Checkout(c *gin.Context) {
	var req services.CheckoutIn
	// the body is optional
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}
	o, err := h.Svc.Checkout(utils.CurrentUserID(c), req.ShippingAddress)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, o)
}

// GET /order/all
func (h *OrderController) ListMine(c *gin.Context) {
	list, err := h.Svc.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /order/admin/all
func (h *OrderController) ListAll(c *gin.Context) {
	list, err := h.Svc.ListAll()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /order/admin/market-share
func (h *OrderController) MarketShare(c *gin.Context) {
	out, err := h.Svc.MarketShareByCategory()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /order/admin/export
func (h *OrderController) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Svc.ExportXLSX(&buf); err != nil {
		resp.Error(c, err)
		return
	}
	sendXLSX(c, "orders.xlsx", buf.Bytes())
}

// GET /order/:id
// Owners and admins only; the service itself does not check.
func (h *OrderController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	o, err := h.Svc.GetByID(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if o.UserID != utils.CurrentUserID(c) && utils.CurrentRole(c) != entity.RoleAdmin {
		resp.Error(c, services.ErrNotOrderOwner)
		return
	}
	resp.OK(c, o)
}

// DELETE /order/:id
func (h *OrderController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	if err := h.Svc.DeleteOrder(utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Order removed successfully"})
}

// PATCH /order/delivery/:id
func (h *OrderController) UpdateDelivery(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := h.Svc.UpdateDeliveryStatus(id, body.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}
