package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Fenet-Ab/fen-one-shop/pkg/resp"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MaterialController struct{ Svc *services.MaterialService }

func NewMaterialController(s *services.MaterialService) *MaterialController {
	return &MaterialController{Svc: s}
}

type materialBody struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	CategoryID  *uint            `json:"categoryId"`
	Price       *decimal.Decimal `json:"price"`
	Image       string           `json:"image"`
}

// GET /material
func (h *MaterialController) List(c *gin.Context) {
	list, err := h.Svc.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /material/:id
func (h *MaterialController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	m, err := h.Svc.Get(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}

// POST /material (multipart form or JSON with base64 image)
func (h *MaterialController) Create(c *gin.Context) {
	in, err := readMaterialIn(c)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := h.Svc.Create(in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, m)
}

// PUT /material/:id
func (h *MaterialController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	in, err := readMaterialIn(c)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m, err := h.Svc.Update(id, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, m)
}

// DELETE /material/:id
func (h *MaterialController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid id")
		return
	}
	soft, err := h.Svc.Delete(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Material deleted successfully", "archived": soft})
}

// GET /material/admin/export
func (h *MaterialController) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Svc.ExportXLSX(&buf); err != nil {
		resp.Error(c, err)
		return
	}
	sendXLSX(c, "materials.xlsx", buf.Bytes())
}

func readMaterialIn(c *gin.Context) (*services.MaterialIn, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var body materialBody
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		return &services.MaterialIn{
			Title:       body.Title,
			Description: body.Description,
			CategoryID:  body.CategoryID,
			Price:       body.Price,
			ImageBase64: body.Image,
		}, nil
	}

	in := &services.MaterialIn{}
	if v, ok := c.GetPostForm("title"); ok {
		in.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("categoryId"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, err
		}
		id := uint(n)
		in.CategoryID = &id
	}
	if v, ok := c.GetPostForm("price"); ok && v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		in.Price = &p
	}
	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, utils.MaxImageBytes+1))
		if err != nil {
			return nil, err
		}
		in.Image = data
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, err
	}
	return in, nil
}

func sendXLSX(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, services.XLSXContentType, data)
}
