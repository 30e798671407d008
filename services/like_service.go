package services

import (
	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/repository"
)

type LikeService struct {
	Repo         *repository.LikeRepository
	MaterialRepo *repository.MaterialRepository
}

func NewLikeService(repo *repository.LikeRepository, mr *repository.MaterialRepository) *LikeService {
	return &LikeService{Repo: repo, MaterialRepo: mr}
}

// Toggle likes the material, or unlikes it when already liked. It reports the new state.
func (s *LikeService) Toggle(userID, materialID uint) (bool, error) {
	existing, err := s.Repo.Find(userID, materialID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, s.Repo.Delete(existing.ID)
	}

	ok, err := s.MaterialRepo.Exists(materialID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrMaterialNotFound
	}
	if err := s.Repo.Create(&entity.Like{UserID: userID, MaterialID: materialID}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *LikeService) ListForUser(userID uint) ([]entity.Like, error) {
	return s.Repo.ListForUser(userID)
}
