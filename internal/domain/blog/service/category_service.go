package service

import (
	"errors"

	"blog_crud_jwt/internal/domain/blog/model"
	"blog_crud_jwt/internal/domain/blog/repository"

	"gorm.io/gorm"
)

// CategoryService 分类只读服务
type CategoryService interface {
	GetCategories() ([]model.Category, error)
	GetCategory(slug string) (*model.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) GetCategories() ([]model.Category, error) {
	return s.repo.GetList()
}

func (s *categoryService) GetCategory(slug string) (*model.Category, error) {
	category, err := s.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}
