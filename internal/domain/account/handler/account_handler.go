package handler

import (
	"errors"
	"net/http"

	"blog_crud_jwt/internal/domain/account/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccountHandler 账号处理器
type AccountHandler struct {
	service service.AccountService
}

// NewAccountHandler 创建处理器
func NewAccountHandler(service service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,min=6"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotInput 忘记密码输入
type ForgotInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ChangePasswordInput 修改密码输入
type ChangePasswordInput struct {
	OldPassword        string `json:"oldPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=6"`
	NewPasswordConfirm string `json:"newPasswordConfirm" binding:"required,min=6"`
}

// Register 处理注册请求
// @Summary 注册新账号，发送激活邮件
// @Tags Account
// @Accept json
// @Produce json
// @Param input body RegisterInput true "注册信息"
// @Success 201 {object} response.Response
// @Router /register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	_, err := h.service.Register(input.Email, input.Password, input.PasswordConfirm, input.FirstName, input.LastName)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrUserExists, err.Error())
		return
	}

	response.Created(c, "An activation link has been sent to your email")
}

// Activate 激活账号
// @Summary 通过激活码激活账号
// @Tags Account
// @Param u query string true "激活码"
// @Success 200 {object} response.Response
// @Router /activate [get]
func (h *AccountHandler) Activate(c *gin.Context) {
	code := c.Query("u")

	if err := h.service.Activate(code); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "Activation code not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, "Your account has been activated")
}

// Login 处理登录请求
func (h *AccountHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	tokenString, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"token": tokenString})
}

// Logout 登出，吊销当前用户的全部 token
func (h *AccountHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.service.Logout(userID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "Logged out")
}

// ForgotPassword 忘记密码，下发随机新密码
func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	var input ForgotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.ForgotPassword(input.Email); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	response.Success(c, "A new password has been sent to your email")
}

// ChangePassword 修改密码
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.service.ChangePassword(userID, input.OldPassword, input.NewPassword, input.NewPasswordConfirm); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	response.Success(c, "Password changed")
}

// GetProfiles 获取用户目录
// @Summary 用户列表（需登录）
// @Tags Account
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} utils.PageResult
// @Router /profile [get]
func (h *AccountHandler) GetProfiles(c *gin.Context) {
	var p utils.Pagination
	c.ShouldBindQuery(&p)

	users, total, err := h.service.GetProfiles(p.Page, p.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to fetch users")
		return
	}

	response.Success(c, utils.PageResult{
		List:  users,
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
	})
}

// GetProfile 获取单个用户
func (h *AccountHandler) GetProfile(c *gin.Context) {
	id := c.Param("id")
	user, err := h.service.GetProfile(id)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
		return
	}
	response.Success(c, user)
}
