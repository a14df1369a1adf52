package model

import (
	"time"

	accountModel "blog_crud_jwt/internal/domain/account/model"
	baseModel "blog_crud_jwt/pkg/model"
)

// Post 文章模型
// 作者和创建时间在创建后不可变
type Post struct {
	baseModel.BaseModel
	AuthorID     string             `gorm:"type:uuid;index" json:"authorId"`
	Author       *accountModel.User `gorm:"foreignKey:AuthorID" json:"-"`
	CategorySlug string             `gorm:"size:100;index" json:"category"`
	Category     *Category          `gorm:"foreignKey:CategorySlug;references:Slug" json:"-"`
	Title        string             `gorm:"size:250" json:"title"`
	Text         string             `json:"text"`

	// 关联
	Images   []Image   `json:"images,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
	Ratings  []Rating  `json:"ratings,omitempty"`
	Likes    []Like    `json:"likes,omitempty"`
}

// Image 文章图片，二进制资源存 OSS，这里只存引用
type Image struct {
	baseModel.BaseModel
	PostID string `gorm:"type:uuid;index" json:"postId"`
	Post   *Post  `gorm:"foreignKey:PostID" json:"-"`
	Path   string `json:"path"` // OSS 地址或相对路径，可为空
}

// Comment 评论模型，UpdatedAt 每次修改自动刷新
type Comment struct {
	baseModel.BaseModel
	PostID   string             `gorm:"type:uuid;index" json:"postId"`
	AuthorID string             `gorm:"type:uuid;index" json:"authorId"`
	Author   *accountModel.User `gorm:"foreignKey:AuthorID" json:"-"`
	Text     string             `json:"text"`
}

// Rating 评分，每个 (post, author) 至多一条，取值 [1,5]
type Rating struct {
	baseModel.BaseModel
	PostID   string `gorm:"type:uuid;index:idx_ratings_post_author,unique" json:"postId"`
	AuthorID string `gorm:"type:uuid;index:idx_ratings_post_author,unique" json:"authorId"`
	Rating   int    `json:"rating"`
}

// Like 点赞状态机，每个 (post, user) 一行，is_liked 在两个状态间切换
// 不使用软删除：行的唯一约束是原子翻转的前提
type Like struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	PostID    string    `gorm:"type:uuid;uniqueIndex:idx_likes_post_user" json:"postId"`
	UserID    string    `gorm:"type:uuid;uniqueIndex:idx_likes_post_user" json:"userId"`
	IsLiked   bool      `gorm:"default:false" json:"isLiked"`
	Quantity  int       `gorm:"default:0" json:"quantity"`
}

// FavoriteList 每个用户一份收藏夹
type FavoriteList struct {
	baseModel.BaseModel
	UserID string `gorm:"type:uuid;uniqueIndex" json:"userId"`
}

// Favorite 收藏夹成员关系，切换方式与 Like 相同
type Favorite struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	FavoriteListID string    `gorm:"type:uuid;uniqueIndex:idx_favorites_list_post" json:"favoriteListId"`
	PostID         string    `gorm:"type:uuid;uniqueIndex:idx_favorites_list_post" json:"postId"`
	Post           *Post     `gorm:"foreignKey:PostID" json:"-"`
	IsFavorited    bool      `gorm:"default:false" json:"isFavorited"`
}
