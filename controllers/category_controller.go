package controllers

import (
	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
)

type CategoryController struct{ Svc *services.CategoryService }

func NewCategoryController(s *services.CategoryService) *CategoryController {
	return &CategoryController{Svc: s}
}

// GET /category
func (h *CategoryController) List(c *gin.Context) {
	list, err := h.Svc.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /category/:id
func (h *CategoryController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	cat, err := h.Svc.Get(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cat)
}

// POST /category
func (h *CategoryController) Create(c *gin.Context) {
	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.Svc.Create(body.Name)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, cat)
}

// DELETE /category/:id
func (h *CategoryController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Category deleted successfully"})
}
