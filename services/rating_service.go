package services

import (
	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/repository"

	"gorm.io/gorm"
)

const defaultTopRated = 10

type RatingService struct {
	DB           *gorm.DB
	Repo         *repository.RatingRepository
	MaterialRepo *repository.MaterialRepository
}

func NewRatingService(db *gorm.DB, repo *repository.RatingRepository, mr *repository.MaterialRepository) *RatingService {
	return &RatingService{DB: db, Repo: repo, MaterialRepo: mr}
}

type RateIn struct {
	Value   int    `json:"value"`
	Comment string `json:"comment"`
}

type RatingStats struct {
	AverageRating float64       `json:"averageRating"`
	TotalRatings  int64         `json:"totalRatings"`
	Distribution  map[int]int64 `json:"distribution"`
}

// Rate creates or replaces the user's rating of a material.
func (s *RatingService) Rate(userID, materialID uint, in RateIn) (*entity.Rating, error) {
	if in.Value < 1 || in.Value > 5 {
		return nil, ErrInvalidRating
	}
	ok, err := s.MaterialRepo.Exists(materialID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMaterialNotFound
	}

	var out *entity.Rating
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		rt := &entity.Rating{UserID: userID, MaterialID: materialID, Value: in.Value, Comment: in.Comment}
		if err := s.Repo.Upsert(tx, rt); err != nil {
			return err
		}
		if err := s.refreshStats(tx, materialID); err != nil {
			return err
		}
		found, err := s.Repo.Find(tx, userID, materialID)
		out = found
		return err
	})
	return out, err
}

func (s *RatingService) ListForMaterial(materialID uint) ([]entity.Rating, error) {
	return s.Repo.ListForMaterial(materialID)
}

// Stats always reports every star value from 1 to 5.
func (s *RatingService) Stats(materialID uint) (*RatingStats, error) {
	avg, total, err := s.Repo.Aggregate(s.DB, materialID)
	if err != nil {
		return nil, err
	}
	counts, err := s.Repo.Distribution(materialID)
	if err != nil {
		return nil, err
	}
	dist := make(map[int]int64, 5)
	for v := 1; v <= 5; v++ {
		dist[v] = counts[v]
	}
	return &RatingStats{AverageRating: avg, TotalRatings: total, Distribution: dist}, nil
}

// MyRating returns nil when the user has not rated the material.
func (s *RatingService) MyRating(userID, materialID uint) (*entity.Rating, error) {
	return s.Repo.Find(s.DB, userID, materialID)
}

func (s *RatingService) MyRatings(userID uint) ([]entity.Rating, error) {
	return s.Repo.ListForUser(userID)
}

func (s *RatingService) Delete(userID, materialID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		rt, err := s.Repo.Find(tx, userID, materialID)
		if err != nil {
			return err
		}
		if rt == nil {
			return ErrRatingNotFound
		}
		if err := s.Repo.Delete(tx, rt.ID); err != nil {
			return err
		}
		return s.refreshStats(tx, materialID)
	})
}

func (s *RatingService) TopRated(limit int) ([]entity.Material, error) {
	if limit <= 0 {
		limit = defaultTopRated
	}
	return s.MaterialRepo.TopRated(limit)
}

// RefreshStatsTx recomputes the cached averageRating and ratingCount of a material.
func (s *RatingService) RefreshStatsTx(tx *gorm.DB, materialID uint) error {
	return s.refreshStats(tx, materialID)
}

func (s *RatingService) refreshStats(tx *gorm.DB, materialID uint) error {
	avg, total, err := s.Repo.Aggregate(tx, materialID)
	if err != nil {
		return err
	}
	return s.MaterialRepo.UpdateRatingStats(tx, materialID, avg, total)
}
