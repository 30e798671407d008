package controllers

import (
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	MaterialID uint `json:"materialId" binding:"required"`
}

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	cart, err := h.Svc.GetCart(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /cart/add
func (h *CartController) Add(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.AddItem(utils.CurrentUserID(c), req.MaterialID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, item)
}

// POST /cart/remove (one less)
func (h *CartController) Decrement(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.DecrementItem(utils.CurrentUserID(c), req.MaterialID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}

// POST /cart/delete (whole line)
func (h *CartController) Remove(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Svc.RemoveItem(utils.CurrentUserID(c), req.MaterialID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, item)
}
