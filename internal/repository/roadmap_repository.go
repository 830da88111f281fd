package repository

import (
	"skill_roadmap_backend/internal/model"

	"gorm.io/gorm"
)

type RoadmapRepository struct {
	DB *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{DB: db}
}

func (r *RoadmapRepository) Create(roadmap *model.Roadmap) error {
	return r.DB.Create(roadmap).Error
}

func (r *RoadmapRepository) FindByUserID(userID uint) ([]model.Roadmap, error) {
	var roadmaps []model.Roadmap
	err := r.DB.Where("user_id = ?", userID).Find(&roadmaps).Error
	return roadmaps, err
}
