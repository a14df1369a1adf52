package handler

import (
	"errors"
	"net/http"

	"blog_crud_jwt/internal/domain/blog/policy"
	"blog_crud_jwt/internal/domain/blog/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/pkg/metrics"
	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler 文章处理器
type PostHandler struct {
	service service.PostService
	metrics *metrics.Collector
	baseURL string
}

func NewPostHandler(service service.PostService, metrics *metrics.Collector, baseURL string) *PostHandler {
	return &PostHandler{service: service, metrics: metrics, baseURL: baseURL}
}

// PostInput 创建文章输入
type PostInput struct {
	Category string `json:"category" binding:"required"`
	Title    string `json:"title" binding:"required,max=250"`
	Text     string `json:"text" binding:"required"`
}

// PostUpdateInput 更新文章输入，字段全部可选
type PostUpdateInput struct {
	Category string `json:"category"`
	Title    string `json:"title" binding:"max=250"`
	Text     string `json:"text"`
}

// CommentInput 评论输入
type CommentInput struct {
	Text string `json:"text" binding:"required"`
}

// RatingInput 评分输入
type RatingInput struct {
	Rating int `json:"rating" binding:"required"`
}

// listQuery 列表公共查询参数
type listQuery struct {
	utils.Pagination
	Days int    `form:"days"`
	Q    string `form:"q"`
}

// handleError 领域错误到响应的映射
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.ErrNoPermission, "You are not the author of this post")
	case errors.Is(err, service.ErrDuplicateRating):
		response.Error(c, http.StatusBadRequest, response.ErrDuplicateRate, err.Error())
	case errors.Is(err, service.ErrInvalidRating):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidRating, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// List 文章列表
// @Summary 文章列表，days > 0 时只保留最近 N 天
// @Tags Blog
// @Param days query int false "最近N天"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	var q listQuery
	c.ShouldBindQuery(&q)
	q.GetPageOffset()

	posts, total, err := h.service.GetPosts(q.Days, q.Page, q.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch posts")
		return
	}

	response.Success(c, utils.PageResult{
		List:  posts,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	})
}

// Search 标题或正文的大小写不敏感子串搜索
// q 为空时退化为普通列表
func (h *PostHandler) Search(c *gin.Context) {
	var q listQuery
	c.ShouldBindQuery(&q)
	q.GetPageOffset()

	posts, total, err := h.service.SearchPosts(q.Q, q.Days, q.Page, q.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to search posts")
		return
	}

	response.Success(c, utils.PageResult{
		List:  posts,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	})
}

// MyPosts 当前用户的文章
func (h *PostHandler) MyPosts(c *gin.Context) {
	var q listQuery
	c.ShouldBindQuery(&q)

	views, err := h.service.MyPosts(middleware.GetUserID(c), q.Days, h.baseURL)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch posts")
		return
	}
	response.Success(c, views)
}

// Get 单篇文章的组合表示
// @Summary 文章详情
// @Tags Blog
// @Param id path string true "Post ID"
// @Success 200 {object} response.Response
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	view, err := h.service.GetPost(c.Param("id"), h.baseURL)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, view)
}

// Create 创建文章，作者取自认证身份
func (h *PostHandler) Create(c *gin.Context) {
	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.CreatePost(middleware.GetUserID(c), input.Category, input.Title, input.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, post)
}

// Update 更新文章，仅作者可改
func (h *PostHandler) Update(c *gin.Context) {
	var input PostUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	actor := policy.Actor{ID: middleware.GetUserID(c)}
	post, err := h.service.UpdatePost(actor, c.Param("id"), input.Category, input.Title, input.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, post)
}

// Delete 删除文章，仅作者可删
func (h *PostHandler) Delete(c *gin.Context) {
	actor := policy.Actor{ID: middleware.GetUserID(c)}
	if err := h.service.DeletePost(actor, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, "Post deleted")
}

// Comment 对文章发表评论
func (h *PostHandler) Comment(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.AddComment(middleware.GetUserID(c), c.Param("id"), input.Text)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, comment)
}

// Rate 对文章评分，取值 [1,5]，一人一篇只能评一次
// @Summary 文章评分
// @Tags Blog
// @Param id path string true "Post ID"
// @Param input body RatingInput true "评分"
// @Success 201 {object} response.Response
// @Router /posts/{id}/rating [post]
func (h *PostHandler) Rate(c *gin.Context) {
	var input RatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	rating, err := h.service.RatePost(middleware.GetUserID(c), c.Param("id"), input.Rating)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, rating)
}

// Like 翻转点赞状态
func (h *PostHandler) Like(c *gin.Context) {
	liked, err := h.service.ToggleLike(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordToggle("like", liked)
	}
	response.Success(c, gin.H{"isLiked": liked})
}

// Favorite 翻转收藏状态
func (h *PostHandler) Favorite(c *gin.Context) {
	favorited, err := h.service.ToggleFavorite(middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordToggle("favorite", favorited)
	}
	response.Success(c, gin.H{"isFavorited": favorited})
}

// Favorites 当前用户的收藏夹
func (h *PostHandler) Favorites(c *gin.Context) {
	views, err := h.service.GetFavorites(middleware.GetUserID(c), h.baseURL)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch favorites")
		return
	}
	response.Success(c, views)
}
