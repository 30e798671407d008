package services_test

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/apperr"
	"github.com/Fenet-Ab/fen-one-shop/repository"
	"github.com/Fenet-Ab/fen-one-shop/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func ptr[T any](v T) *T { return &v }

func newCatalog(t *testing.T, s *shop) (*services.CategoryService, *services.MaterialService, string) {
	t.Helper()
	dir := t.TempDir()
	cr := repository.NewCategoryRepository(s.db)
	return services.NewCategoryService(cr), services.NewMaterialService(s.db, s.materials, cr, dir), dir
}

func TestCategoryCreateRejectsDuplicatesAndBlank(t *testing.T) {
	s := newShop(t)
	cats, _, _ := newCatalog(t, s)

	c, err := cats.Create("  Books ")
	require.NoError(t, err)
	assert.Equal(t, "Books", c.Name)

	_, err = cats.Create("Books")
	assert.ErrorIs(t, err, services.ErrCategoryExists)
	_, err = cats.Create("   ")
	assert.ErrorIs(t, err, services.ErrInvalidCategoryName)

	_, err = cats.Create("Art")
	require.NoError(t, err)
	list, err := cats.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Art", list[0].Name)
}

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	s := newShop(t)
	cats, _, _ := newCatalog(t, s)
	m := s.material(t, "Books", "Novel", "10")

	err := cats.Delete(m.CategoryID)
	assert.ErrorIs(t, err, services.ErrCategoryInUse)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	assert.ErrorIs(t, cats.Delete(m.CategoryID+100), services.ErrCategoryNotFound)

	empty, err := cats.Create("Empty")
	require.NoError(t, err)
	require.NoError(t, cats.Delete(empty.ID))
	_, err = cats.Get(empty.ID)
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestMaterialCreateValidates(t *testing.T) {
	s := newShop(t)
	cats, mats, _ := newCatalog(t, s)
	c, err := cats.Create("Books")
	require.NoError(t, err)

	_, err = mats.Create(&services.MaterialIn{Title: ptr("x"), CategoryID: &c.ID, Price: ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, services.ErrInvalidPrice)

	_, err = mats.Create(&services.MaterialIn{Title: ptr(" "), CategoryID: &c.ID})
	assert.ErrorIs(t, err, services.ErrInvalidMaterial)

	_, err = mats.Create(&services.MaterialIn{Title: ptr("x"), CategoryID: ptr(c.ID + 100)})
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)

	_, err = mats.Create(&services.MaterialIn{Title: ptr("x"), CategoryID: &c.ID, ImageBase64: "not base64!"})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestMaterialCreateStoresImage(t *testing.T) {
	s := newShop(t)
	cats, mats, dir := newCatalog(t, s)
	c, err := cats.Create("Books")
	require.NoError(t, err)

	img := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
	m, err := mats.Create(&services.MaterialIn{
		Title: ptr("Atlas"), Description: ptr("maps"), CategoryID: &c.ID,
		Price: ptr(dec("12.50")), ImageBase64: img,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(m.ImageURL, "/uploads/materials/"))
	assert.True(t, strings.HasSuffix(m.ImageURL, ".png"))
	require.NotNil(t, m.Category)
	assert.Equal(t, "Books", m.Category.Name)
	assert.True(t, dec("12.5").Equal(m.Price))

	stored := filepath.Join(dir, "materials", filepath.Base(m.ImageURL))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	// replacing the image removes the old file
	updated, err := mats.Update(m.ID, &services.MaterialIn{Image: pngHeader, Price: ptr(dec("15"))})
	require.NoError(t, err)
	assert.NotEqual(t, m.ImageURL, updated.ImageURL)
	assert.Equal(t, "Atlas", updated.Title)
	assert.True(t, dec("15").Equal(updated.Price))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
}

func TestMaterialDeleteSoftWhenOrdered(t *testing.T) {
	s := newShop(t)
	_, mats, _ := newCatalog(t, s)
	buyer := s.user(t, "Buyer", entity.RoleUser)
	other := s.user(t, "Browser", entity.RoleUser)
	m := s.material(t, "Books", "Ordered", "10")

	s.add(t, buyer.ID, m.ID, 1)
	_, err := s.order.Checkout(buyer.ID, "")
	require.NoError(t, err)
	s.add(t, other.ID, m.ID, 2)

	soft, err := mats.Delete(m.ID)
	require.NoError(t, err)
	assert.True(t, soft)

	got, err := mats.Get(m.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)

	cart, err := s.cart.GetCart(other.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	list, err := mats.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMaterialDeleteHardWhenNeverOrdered(t *testing.T) {
	s := newShop(t)
	_, mats, _ := newCatalog(t, s)
	u := s.user(t, "Browser", entity.RoleUser)
	m := s.material(t, "Books", "Unsold", "10")
	s.add(t, u.ID, m.ID, 1)
	_, err := s.rating.Rate(u.ID, m.ID, services.RateIn{Value: 4})
	require.NoError(t, err)

	soft, err := mats.Delete(m.ID)
	require.NoError(t, err)
	assert.False(t, soft)

	_, err = mats.Get(m.ID)
	assert.ErrorIs(t, err, services.ErrMaterialNotFound)

	var ratings int64
	require.NoError(t, s.db.Model(&entity.Rating{}).Where("material_id = ?", m.ID).Count(&ratings).Error)
	assert.Zero(t, ratings)

	_, err = mats.Delete(m.ID)
	assert.ErrorIs(t, err, services.ErrMaterialNotFound)
}

func TestMaterialExportXLSX(t *testing.T) {
	s := newShop(t)
	_, mats, _ := newCatalog(t, s)
	s.material(t, "Books", "Novel", "10")
	s.material(t, "Art", "Brush", "3.5")

	var buf bytes.Buffer
	require.NoError(t, mats.ExportXLSX(&buf))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet := f.Sheets[0]
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Title", sheet.Rows[0].Cells[1].String())
	assert.Equal(t, "Novel", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "Art", sheet.Rows[2].Cells[2].String())
	assert.Equal(t, "3.50", sheet.Rows[2].Cells[3].String())
}
