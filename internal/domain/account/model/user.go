package model

import (
	baseModel "blog_crud_jwt/pkg/model"
)

// User 用户模型
// 注册后处于未激活状态，凭激活码一次性激活
type User struct {
	baseModel.BaseModel
	Email          string `gorm:"unique" json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Password       string `json:"-"` // bcrypt 哈希，不返回给前端
	IsActive       bool   `gorm:"default:false" json:"isActive"`
	ActivationCode string `gorm:"index" json:"-"` // 激活后清空
}
