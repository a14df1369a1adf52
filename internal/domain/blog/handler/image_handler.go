package handler

import (
	"net/http"

	"blog_crud_jwt/internal/domain/blog/policy"
	"blog_crud_jwt/internal/domain/blog/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/uploader"
	"blog_crud_jwt/pkg/response"

	"github.com/gin-gonic/gin"
)

// ImageHandler 文章图片处理器
type ImageHandler struct {
	service  service.PostService
	uploader uploader.Uploader
}

func NewImageHandler(service service.PostService, uploader uploader.Uploader) *ImageHandler {
	return &ImageHandler{service: service, uploader: uploader}
}

// ImageInput 挂载图片输入
type ImageInput struct {
	PostID string `json:"postId" binding:"required"`
	Path   string `json:"path"`
}

// ImageUpdateInput 更新图片输入
type ImageUpdateInput struct {
	Path string `json:"path"`
}

// Upload 上传图片文件，返回公开地址
// @Summary 上传图片到对象存储
// @Tags Blog
// @Accept multipart/form-data
// @Param file formData file true "图片文件"
// @Success 200 {object} response.Response
// @Router /upload [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	if h.uploader == nil {
		response.Error(c, http.StatusServiceUnavailable, response.ErrServerInternal, "Object storage is not configured")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "file is required")
		return
	}

	url, err := h.uploader.UploadFile(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to upload file")
		return
	}

	response.Success(c, gin.H{"url": url})
}

// Create 把图片挂到文章上，仅文章作者可操作
// path 可以为空，对应尚未上传资源的占位图
func (h *ImageHandler) Create(c *gin.Context) {
	var input ImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	actor := policy.Actor{ID: middleware.GetUserID(c)}
	image, err := h.service.AddImage(actor, input.PostID, input.Path)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, image)
}

// Update 更新图片路径，仅所属文章作者可操作
func (h *ImageHandler) Update(c *gin.Context) {
	var input ImageUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	actor := policy.Actor{ID: middleware.GetUserID(c)}
	image, err := h.service.UpdateImage(actor, c.Param("id"), input.Path)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, image)
}

// Delete 删除图片，仅所属文章作者可操作
func (h *ImageHandler) Delete(c *gin.Context) {
	actor := policy.Actor{ID: middleware.GetUserID(c)}
	if err := h.service.DeleteImage(actor, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, "Image deleted")
}
