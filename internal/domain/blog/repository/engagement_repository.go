package repository

import (
	"errors"

	"blog_crud_jwt/internal/domain/blog/model"

	"gorm.io/gorm"
)

// EngagementRepository 点赞与收藏
// 切换操作是单条 upsert 语句：并发请求不会丢失翻转
type EngagementRepository interface {
	ToggleLike(postID, userID string) (bool, error)
	CountLikes(postID string) (int64, error)

	GetOrCreateFavoriteList(userID string) (*model.FavoriteList, error)
	ToggleFavorite(favoriteListID, postID string) (bool, error)
	GetFavorites(favoriteListID string) ([]model.Favorite, error)
	GetFavoritePosts(favoriteListID string) ([]model.Post, error)
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

const toggleLikeSQL = `
INSERT INTO likes (post_id, user_id, is_liked, quantity, created_at, updated_at)
VALUES (?, ?, TRUE, 1, now(), now())
ON CONFLICT (post_id, user_id)
DO UPDATE SET is_liked = NOT likes.is_liked, updated_at = now()
RETURNING is_liked`

// ToggleLike 原子翻转 (post, user) 的点赞状态，返回翻转后的状态
func (r *engagementRepository) ToggleLike(postID, userID string) (bool, error) {
	var isLiked bool
	if err := r.db.Raw(toggleLikeSQL, postID, userID).Scan(&isLiked).Error; err != nil {
		return false, err
	}
	return isLiked, nil
}

func (r *engagementRepository) CountLikes(postID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("post_id = ? AND is_liked = TRUE", postID).Count(&count).Error
	return count, err
}

// GetOrCreateFavoriteList 取用户收藏夹，不存在则创建
func (r *engagementRepository) GetOrCreateFavoriteList(userID string) (*model.FavoriteList, error) {
	var list model.FavoriteList
	err := r.db.Where("user_id = ?", userID).First(&list).Error
	if err == nil {
		return &list, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	list = model.FavoriteList{UserID: userID}
	if err := r.db.Create(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

const toggleFavoriteSQL = `
INSERT INTO favorites (favorite_list_id, post_id, is_favorited, created_at, updated_at)
VALUES (?, ?, TRUE, now(), now())
ON CONFLICT (favorite_list_id, post_id)
DO UPDATE SET is_favorited = NOT favorites.is_favorited, updated_at = now()
RETURNING is_favorited`

// ToggleFavorite 原子翻转收藏状态，返回翻转后的状态
func (r *engagementRepository) ToggleFavorite(favoriteListID, postID string) (bool, error) {
	var isFavorited bool
	if err := r.db.Raw(toggleFavoriteSQL, favoriteListID, postID).Scan(&isFavorited).Error; err != nil {
		return false, err
	}
	return isFavorited, nil
}

func (r *engagementRepository) GetFavorites(favoriteListID string) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.Where("favorite_list_id = ? AND is_favorited = TRUE", favoriteListID).
		Order("updated_at desc").Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// GetFavoritePosts 收藏夹内处于收藏态的文章，带全部子关联
func (r *engagementRepository) GetFavoritePosts(favoriteListID string) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.
		Joins("JOIN favorites ON favorites.post_id = posts.id").
		Where("favorites.favorite_list_id = ? AND favorites.is_favorited = TRUE", favoriteListID).
		Preload("Author").
		Preload("Category").
		Preload("Images").
		Preload("Comments").
		Preload("Comments.Author").
		Preload("Ratings").
		Preload("Likes").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}
