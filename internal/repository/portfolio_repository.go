package repository

import (
	"skill_roadmap_backend/internal/model"

	"gorm.io/gorm"
)

type PortfolioRepository struct {
	DB *gorm.DB
}

func NewPortfolioRepository(db *gorm.DB) *PortfolioRepository {
	return &PortfolioRepository{DB: db}
}

func (r *PortfolioRepository) Create(p *model.Portfolio) error {
	return r.DB.Create(p).Error
}

func (r *PortfolioRepository) FindByUserID(userID uint) ([]model.Portfolio, error) {
	var portfolios []model.Portfolio
	err := r.DB.Where("user_id = ?", userID).Find(&portfolios).Error
	return portfolios, err
}
