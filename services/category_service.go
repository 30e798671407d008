package services

import (
	"errors"
	"strings"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/repository"

	"gorm.io/gorm"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

func (s *CategoryService) List() ([]entity.Category, error) {
	return s.Repo.List()
}

func (s *CategoryService) Get(id uint) (*entity.Category, error) {
	c, err := s.Repo.FindWithMaterials(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

func (s *CategoryService) Create(name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCategoryName
	}
	n, err := s.Repo.CountByName(name)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrCategoryExists
	}
	c := &entity.Category{Name: name}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete refuses while any material, soft-deleted included, still points at the category.
func (s *CategoryService) Delete(id uint) error {
	n, err := s.Repo.CountMaterials(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	rows, err := s.Repo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
