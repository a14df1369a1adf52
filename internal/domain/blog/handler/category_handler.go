package handler

import (
	"errors"
	"net/http"

	"blog_crud_jwt/internal/domain/blog/service"
	"blog_crud_jwt/pkg/response"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 分类处理器
type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List 分类列表（按标题升序）
// @Summary 分类列表
// @Tags Blog
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.GetCategories()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch categories")
		return
	}
	response.Success(c, categories)
}

// Get 单个分类
func (h *CategoryHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	category, err := h.service.GetCategory(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Category not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch category")
		return
	}
	response.Success(c, category)
}
