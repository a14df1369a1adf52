package repository

import (
	"time"

	"blog_crud_jwt/internal/domain/blog/model"

	"gorm.io/gorm"
)

// PostFilter 列表过滤条件
// Days <= 0 不做时间过滤；Query 为空不做搜索过滤
type PostFilter struct {
	Days     int
	AuthorID string
	Query    string
}

type PostRepository interface {
	CreatePost(post *model.Post) error
	GetPostByID(id string) (*model.Post, error)
	GetPosts(filter PostFilter, offset, limit int) ([]model.Post, int64, error)
	GetPostsWithChildren(filter PostFilter) ([]model.Post, error)
	UpdatePost(post *model.Post) error
	DeletePost(post *model.Post) error

	CreateComment(comment *model.Comment) error

	CreateRating(rating *model.Rating) error
	HasRated(postID, authorID string) (bool, error)

	CreateImage(image *model.Image) error
	GetImageByID(id string) (*model.Image, error)
	UpdateImage(image *model.Image) error
	DeleteImage(image *model.Image) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyFilter 组装过滤条件，时间窗相对当前时刻计算
func applyFilter(query *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.Days > 0 {
		start := time.Now().AddDate(0, 0, -filter.Days)
		query = query.Where("posts.created_at >= ?", start)
	}
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR text ILIKE ?", pattern, pattern)
	}
	return query
}

// --- Post ---

func (r *postRepository) CreatePost(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetPostByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.db.
		Preload("Author").
		Preload("Category").
		Preload("Images").
		Preload("Comments").
		Preload("Comments.Author").
		Preload("Ratings").
		Preload("Likes").
		Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetPosts(filter PostFilter, offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := applyFilter(r.db.Model(&model.Post{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Category").Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetPostsWithChildren 带全部子关联的列表，供组合视图使用
func (r *postRepository) GetPostsWithChildren(filter PostFilter) ([]model.Post, error) {
	var posts []model.Post
	query := applyFilter(r.db.Model(&model.Post{}), filter)
	err := query.
		Preload("Author").
		Preload("Category").
		Preload("Images").
		Preload("Comments").
		Preload("Comments.Author").
		Preload("Ratings").
		Preload("Likes").
		Order("created_at desc").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) UpdatePost(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) DeletePost(post *model.Post) error {
	return r.db.Delete(post).Error
}

// --- Comment ---

func (r *postRepository) CreateComment(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// --- Rating ---

func (r *postRepository) CreateRating(rating *model.Rating) error {
	return r.db.Create(rating).Error
}

func (r *postRepository) HasRated(postID, authorID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Rating{}).Where("post_id = ? AND author_id = ?", postID, authorID).Count(&count).Error
	return count > 0, err
}

// --- Image ---

func (r *postRepository) CreateImage(image *model.Image) error {
	return r.db.Create(image).Error
}

func (r *postRepository) GetImageByID(id string) (*model.Image, error) {
	var image model.Image
	if err := r.db.Preload("Post").Where("id = ?", id).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *postRepository) UpdateImage(image *model.Image) error {
	return r.db.Save(image).Error
}

func (r *postRepository) DeleteImage(image *model.Image) error {
	return r.db.Delete(image).Error
}
