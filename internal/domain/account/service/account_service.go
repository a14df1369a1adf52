package service

import (
	"context"
	"errors"
	"log"
	"time"

	"blog_crud_jwt/internal/domain/account/model"
	"blog_crud_jwt/internal/domain/account/repository"
	"blog_crud_jwt/internal/pkg/mailer"
	"blog_crud_jwt/internal/pkg/token"
	"blog_crud_jwt/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const newPasswordLength = 8

// AccountService 账号服务接口
type AccountService interface {
	Register(email, password, passwordConfirm, firstName, lastName string) (*model.User, error)
	Activate(code string) error
	Login(email, password string) (string, error)
	Logout(userID string) error
	ForgotPassword(email string) error
	ChangePassword(userID, oldPassword, newPassword, newPasswordConfirm string) error
	GetProfiles(page, limit int) ([]model.User, int64, error)
	GetProfile(id string) (*model.User, error)
}

// accountService 实现
type accountService struct {
	repo   repository.UserRepository
	tokens token.Store
	mailer mailer.Mailer
}

// NewAccountService 创建账号服务
func NewAccountService(repo repository.UserRepository, tokens token.Store, mailer mailer.Mailer) AccountService {
	return &accountService{repo: repo, tokens: tokens, mailer: mailer}
}

// Register 注册
// 创建未激活用户并发送激活邮件；邮件发送失败不影响注册结果
func (s *accountService) Register(email, password, passwordConfirm, firstName, lastName string) (*model.User, error) {
	if password != passwordConfirm {
		return nil, errors.New("passwords do not match")
	}

	exists, err := s.repo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("user with this email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		Password:       string(hash),
		IsActive:       false,
		ActivationCode: uuid.New().String(),
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendActivationEmail(user.Email, user.ActivationCode); err != nil {
		log.Printf("Failed to send activation email to %s: %v", user.Email, err)
	}

	return user, nil
}

// Activate 激活账号
// 一次性操作：激活后清空激活码，重复激活会因为找不到码而失败
func (s *accountService) Activate(code string) error {
	user, err := s.repo.GetByActivationCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	user.IsActive = true
	user.ActivationCode = ""
	return s.repo.Update(user)
}

// Login 登录
// 失败时统一返回 ErrInvalidCredentials，不暴露邮箱是否存在
func (s *accountService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !user.IsActive {
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, jti, expireAt, err := utils.GenerateToken(user.ID)
	if err != nil {
		return "", err
	}

	if err := s.tokens.Add(context.Background(), user.ID, jti, time.Until(expireAt)); err != nil {
		return "", err
	}

	return tokenString, nil
}

// Logout 吊销该用户所有已签发 token
func (s *accountService) Logout(userID string) error {
	return s.tokens.RevokeAll(context.Background(), userID)
}

// ForgotPassword 忘记密码
// 生成随机新密码并立即生效，通过邮件下发
func (s *accountService) ForgotPassword(email string) error {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("no user with this email")
		}
		return err
	}

	newPassword := utils.RandomPassword(newPasswordLength)
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hash)
	if err := s.repo.Update(user); err != nil {
		return err
	}

	if err := s.mailer.SendNewPassword(user.Email, newPassword); err != nil {
		log.Printf("Failed to send new password to %s: %v", user.Email, err)
	}

	return nil
}

// ChangePassword 修改密码（需要旧密码）
func (s *accountService) ChangePassword(userID, oldPassword, newPassword, newPasswordConfirm string) error {
	if newPassword != newPasswordConfirm {
		return errors.New("passwords do not match")
	}

	user, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("wrong old password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hash)
	return s.repo.Update(user)
}

// GetProfiles 获取用户列表（分页）
func (s *accountService) GetProfiles(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.GetList(offset, limit)
}

// GetProfile 获取单个用户
func (s *accountService) GetProfile(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}
