package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"blog_crud_jwt/internal/domain/blog/composer"
	"blog_crud_jwt/internal/domain/blog/model"
	"blog_crud_jwt/internal/domain/blog/policy"
	"blog_crud_jwt/pkg/cache"
)

// CachedPostService 带缓存的文章服务
// 读多写少：详情和列表缓存，任何写操作统一失效
type CachedPostService struct {
	inner PostService
	cache cache.CacheService
}

// NewCachedPostService 创建带缓存的文章服务
func NewCachedPostService(inner PostService, cache cache.CacheService) PostService {
	return &CachedPostService{inner: inner, cache: cache}
}

// 缓存键常量
const (
	PostCacheKeyPrefix     = "post:"
	PostListCacheKeyPrefix = "post_list:"
	PostCacheTTL           = time.Minute * 10
	PostListCacheTTL       = time.Minute * 5
)

func postCacheKey(id string) string {
	return PostCacheKeyPrefix + id
}

func postListCacheKey(days, page, limit int) string {
	return fmt.Sprintf("%s%d:%d:%d", PostListCacheKeyPrefix, days, page, limit)
}

// invalidatePost 清除单篇与全部列表缓存
func (s *CachedPostService) invalidatePost(postID string) {
	ctx := context.Background()
	if postID != "" {
		if err := s.cache.Delete(ctx, postCacheKey(postID)); err != nil {
			log.Printf("Warning: failed to invalidate post cache: %v", err)
		}
	}
	if err := s.cache.InvalidatePattern(ctx, PostListCacheKeyPrefix+"*"); err != nil {
		log.Printf("Warning: failed to invalidate post list cache: %v", err)
	}
}

type cachedPostList struct {
	Posts []model.Post `json:"posts"`
	Total int64        `json:"total"`
}

// GetPosts 列表（带缓存）
func (s *CachedPostService) GetPosts(days, page, limit int) ([]model.Post, int64, error) {
	ctx := context.Background()
	key := postListCacheKey(days, page, limit)

	var cached cachedPostList
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached.Posts, cached.Total, nil
	}

	posts, total, err := s.inner.GetPosts(days, page, limit)
	if err != nil {
		return nil, 0, err
	}

	cached = cachedPostList{Posts: posts, Total: total}
	if err := s.cache.Set(ctx, key, cached, PostListCacheTTL); err != nil {
		log.Printf("Warning: failed to cache post list: %v", err)
	}

	return posts, total, nil
}

// GetPost 详情（带缓存）
func (s *CachedPostService) GetPost(id, baseURL string) (*composer.PostView, error) {
	ctx := context.Background()
	key := postCacheKey(id)

	var view composer.PostView
	if err := s.cache.Get(ctx, key, &view); err == nil {
		return &view, nil
	}

	result, err := s.inner.GetPost(id, baseURL)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, result, PostCacheTTL); err != nil {
		log.Printf("Warning: failed to cache post: %v", err)
	}

	return result, nil
}

// SearchPosts 搜索不缓存，查询维度太分散
func (s *CachedPostService) SearchPosts(q string, days, page, limit int) ([]model.Post, int64, error) {
	return s.inner.SearchPosts(q, days, page, limit)
}

func (s *CachedPostService) MyPosts(actorID string, days int, baseURL string) ([]composer.PostView, error) {
	return s.inner.MyPosts(actorID, days, baseURL)
}

func (s *CachedPostService) CreatePost(actorID, categorySlug, title, text string) (*model.Post, error) {
	post, err := s.inner.CreatePost(actorID, categorySlug, title, text)
	if err != nil {
		return nil, err
	}
	s.invalidatePost("")
	return post, nil
}

func (s *CachedPostService) UpdatePost(actor policy.Actor, id, categorySlug, title, text string) (*model.Post, error) {
	post, err := s.inner.UpdatePost(actor, id, categorySlug, title, text)
	if err != nil {
		return nil, err
	}
	s.invalidatePost(id)
	return post, nil
}

func (s *CachedPostService) DeletePost(actor policy.Actor, id string) error {
	if err := s.inner.DeletePost(actor, id); err != nil {
		return err
	}
	s.invalidatePost(id)
	return nil
}

func (s *CachedPostService) AddComment(actorID, postID, text string) (*model.Comment, error) {
	comment, err := s.inner.AddComment(actorID, postID, text)
	if err != nil {
		return nil, err
	}
	s.invalidatePost(postID)
	return comment, nil
}

func (s *CachedPostService) RatePost(actorID, postID string, value int) (*model.Rating, error) {
	rating, err := s.inner.RatePost(actorID, postID, value)
	if err != nil {
		return nil, err
	}
	s.invalidatePost(postID)
	return rating, nil
}

func (s *CachedPostService) ToggleLike(actorID, postID string) (bool, error) {
	liked, err := s.inner.ToggleLike(actorID, postID)
	if err != nil {
		return false, err
	}
	s.invalidatePost(postID)
	return liked, nil
}

func (s *CachedPostService) ToggleFavorite(actorID, postID string) (bool, error) {
	favorited, err := s.inner.ToggleFavorite(actorID, postID)
	if err != nil {
		return false, err
	}
	s.invalidatePost(postID)
	return favorited, nil
}

func (s *CachedPostService) GetFavorites(actorID, baseURL string) ([]composer.FavoriteView, error) {
	return s.inner.GetFavorites(actorID, baseURL)
}

func (s *CachedPostService) AddImage(actor policy.Actor, postID, path string) (*model.Image, error) {
	image, err := s.inner.AddImage(actor, postID, path)
	if err != nil {
		return nil, err
	}
	s.invalidatePost(postID)
	return image, nil
}

func (s *CachedPostService) UpdateImage(actor policy.Actor, imageID, path string) (*model.Image, error) {
	image, err := s.inner.UpdateImage(actor, imageID, path)
	if err != nil {
		return nil, err
	}
	s.invalidatePost(image.PostID)
	return image, nil
}

func (s *CachedPostService) DeleteImage(actor policy.Actor, imageID string) error {
	if err := s.inner.DeleteImage(actor, imageID); err != nil {
		return err
	}
	s.invalidatePost("")
	return nil
}
