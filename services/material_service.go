package services

import (
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/logger"
	"github.com/Fenet-Ab/fen-one-shop/repository"
	"github.com/Fenet-Ab/fen-one-shop/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const materialFolder = "materials"

type MaterialService struct {
	DB           *gorm.DB
	Repo         *repository.MaterialRepository
	CategoryRepo *repository.CategoryRepository
	UploadDir    string
	log          *zap.Logger
}

func NewMaterialService(db *gorm.DB, repo *repository.MaterialRepository, cr *repository.CategoryRepository, uploadDir string) *MaterialService {
	return &MaterialService{DB: db, Repo: repo, CategoryRepo: cr, UploadDir: uploadDir, log: logger.Named("material")}
}

// MaterialIn carries create and update input. Nil fields are left unchanged on update.
// Image holds raw bytes from a multipart upload; ImageBase64 is the JSON alternative.
type MaterialIn struct {
	Title       *string
	Description *string
	CategoryID  *uint
	Price       *decimal.Decimal
	Image       []byte
	ImageBase64 string
}

func (s *MaterialService) List() ([]entity.Material, error) {
	return s.Repo.ListActive()
}

func (s *MaterialService) Get(id uint) (*entity.Material, error) {
	m, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMaterialNotFound
	}
	return m, err
}

func (s *MaterialService) Create(in *MaterialIn) (*entity.Material, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" || in.CategoryID == nil {
		return nil, ErrInvalidMaterial
	}
	price := decimal.Zero
	if in.Price != nil {
		price = *in.Price
	}
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if err := s.checkCategory(*in.CategoryID); err != nil {
		return nil, err
	}

	m := &entity.Material{
		Title:      strings.TrimSpace(*in.Title),
		CategoryID: *in.CategoryID,
		Price:      price,
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	url, err := s.storeImage(in)
	if err != nil {
		return nil, err
	}
	m.ImageURL = url

	if err := s.Repo.Create(m); err != nil {
		return nil, err
	}
	s.log.Info("material created", zap.Uint("materialId", m.ID))
	return s.Get(m.ID)
}

func (s *MaterialService) Update(id uint, in *MaterialIn) (*entity.Material, error) {
	old, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, ErrInvalidMaterial
		}
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.CategoryID != nil {
		if err := s.checkCategory(*in.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *in.CategoryID
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		updates["price"] = *in.Price
	}
	url, err := s.storeImage(in)
	if err != nil {
		return nil, err
	}
	if url != "" {
		updates["image_url"] = url
	}

	if len(updates) > 0 {
		if err := s.Repo.Update(id, updates); err != nil {
			return nil, err
		}
	}
	if url != "" {
		s.removeImage(old.ImageURL)
	}
	return s.Get(id)
}

// Delete purges the material from carts. Materials that appear in any order
// are only flagged as deleted so order history keeps resolving; the rest are
// removed together with their ratings, likes and image.
func (s *MaterialService) Delete(id uint) (soft bool, err error) {
	m, err := s.Get(id)
	if err != nil {
		return false, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.PurgeFromCarts(tx, id); err != nil {
			return err
		}
		refs, err := s.Repo.CountOrderRefs(tx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			soft = true
			return s.Repo.MarkDeleted(tx, id)
		}
		return s.Repo.Delete(tx, id)
	})
	if err != nil {
		return false, err
	}
	if !soft {
		s.removeImage(m.ImageURL)
	}
	s.log.Info("material deleted", zap.Uint("materialId", id), zap.Bool("soft", soft))
	return soft, nil
}

// ExportXLSX writes every material, deleted ones included, as a spreadsheet.
func (s *MaterialService) ExportXLSX(w io.Writer) error {
	list, err := s.Repo.ListAll()
	if err != nil {
		return err
	}
	headers := []string{"ID", "Title", "Category", "Price", "AverageRating", "RatingCount", "Deleted", "CreatedAt"}
	rows := make([][]any, 0, len(list))
	for _, m := range list {
		category := ""
		if m.Category != nil {
			category = m.Category.Name
		}
		rows = append(rows, []any{
			m.ID, m.Title, category, m.Price.StringFixed(2),
			m.AverageRating, m.RatingCount, m.IsDeleted,
			m.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return writeSheet(w, "Materials", headers, rows)
}

func (s *MaterialService) checkCategory(id uint) error {
	ok, err := s.CategoryRepo.Exists(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *MaterialService) storeImage(in *MaterialIn) (string, error) {
	dir := filepath.Join(s.UploadDir, materialFolder)
	var (
		name string
		err  error
	)
	switch {
	case len(in.Image) > 0:
		name, err = utils.SaveImage(in.Image, dir)
	case in.ImageBase64 != "":
		name, err = utils.SaveBase64Image(in.ImageBase64, dir)
	default:
		return "", nil
	}
	if err != nil {
		return "", invalidImage(err)
	}
	return path.Join("/uploads", materialFolder, name), nil
}

func (s *MaterialService) removeImage(url string) {
	if url == "" {
		return
	}
	if err := utils.RemoveUpload(filepath.Join(s.UploadDir, materialFolder), path.Base(url)); err != nil {
		s.log.Warn("remove image failed", zap.String("url", url), zap.Error(err))
	}
}
