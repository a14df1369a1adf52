package repository

import (
	"blog_crud_jwt/internal/domain/blog/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	GetList() ([]model.Category, error)
	GetBySlug(slug string) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetList() ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.Order("title asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
