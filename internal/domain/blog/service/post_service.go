package service

import (
	"errors"

	"blog_crud_jwt/internal/domain/blog/composer"
	"blog_crud_jwt/internal/domain/blog/model"
	"blog_crud_jwt/internal/domain/blog/policy"
	"blog_crud_jwt/internal/domain/blog/repository"

	"gorm.io/gorm"
)

// PostService 文章服务接口
// actor 和 baseURL 全部显式传参，服务内部不读任何请求级全局状态
type PostService interface {
	GetPosts(days, page, limit int) ([]model.Post, int64, error)
	GetPost(id, baseURL string) (*composer.PostView, error)
	SearchPosts(q string, days, page, limit int) ([]model.Post, int64, error)
	MyPosts(actorID string, days int, baseURL string) ([]composer.PostView, error)
	CreatePost(actorID, categorySlug, title, text string) (*model.Post, error)
	UpdatePost(actor policy.Actor, id, categorySlug, title, text string) (*model.Post, error)
	DeletePost(actor policy.Actor, id string) error

	AddComment(actorID, postID, text string) (*model.Comment, error)
	RatePost(actorID, postID string, value int) (*model.Rating, error)
	ToggleLike(actorID, postID string) (bool, error)
	ToggleFavorite(actorID, postID string) (bool, error)
	GetFavorites(actorID, baseURL string) ([]composer.FavoriteView, error)

	AddImage(actor policy.Actor, postID, path string) (*model.Image, error)
	UpdateImage(actor policy.Actor, imageID, path string) (*model.Image, error)
	DeleteImage(actor policy.Actor, imageID string) error
}

type postService struct {
	posts      repository.PostRepository
	engagement repository.EngagementRepository
	categories repository.CategoryRepository
}

func NewPostService(posts repository.PostRepository, engagement repository.EngagementRepository, categories repository.CategoryRepository) PostService {
	return &postService{posts: posts, engagement: engagement, categories: categories}
}

// GetPosts 文章列表，days > 0 时只保留最近 N 天
func (s *postService) GetPosts(days, page, limit int) ([]model.Post, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.posts.GetPosts(repository.PostFilter{Days: days}, offset, limit)
}

// GetPost 单篇文章的组合表示
func (s *postService) GetPost(id, baseURL string) (*composer.PostView, error) {
	post, err := s.posts.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	view := composer.ComposePost(post, baseURL)
	return &view, nil
}

// SearchPosts 标题或正文的大小写不敏感子串匹配
// q 为空时等价于不带搜索条件的列表
func (s *postService) SearchPosts(q string, days, page, limit int) ([]model.Post, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.posts.GetPosts(repository.PostFilter{Days: days, Query: q}, offset, limit)
}

// MyPosts 当前用户的文章，时间窗过滤之后再按作者过滤
func (s *postService) MyPosts(actorID string, days int, baseURL string) ([]composer.PostView, error) {
	posts, err := s.posts.GetPostsWithChildren(repository.PostFilter{Days: days, AuthorID: actorID})
	if err != nil {
		return nil, err
	}

	views := make([]composer.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, composer.ComposePost(&posts[i], baseURL))
	}
	return views, nil
}

// CreatePost 创建文章，作者取自认证身份而非请求体
func (s *postService) CreatePost(actorID, categorySlug, title, text string) (*model.Post, error) {
	if _, err := s.categories.GetBySlug(categorySlug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("unknown category")
		}
		return nil, err
	}

	post := &model.Post{
		AuthorID:     actorID,
		CategorySlug: categorySlug,
		Title:        title,
		Text:         text,
	}

	if err := s.posts.CreatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost 仅作者可改，创建时间不动
func (s *postService) UpdatePost(actor policy.Actor, id, categorySlug, title, text string) (*model.Post, error) {
	post, err := s.posts.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !policy.Check(policy.ResourcePost, policy.ActionUpdate, actor, post.AuthorID) {
		return nil, ErrForbidden
	}

	if categorySlug != "" {
		if _, err := s.categories.GetBySlug(categorySlug); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("unknown category")
			}
			return nil, err
		}
		post.CategorySlug = categorySlug
	}
	if title != "" {
		post.Title = title
	}
	if text != "" {
		post.Text = text
	}

	if err := s.posts.UpdatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 仅作者可删
func (s *postService) DeletePost(actor policy.Actor, id string) error {
	post, err := s.posts.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !policy.Check(policy.ResourcePost, policy.ActionDelete, actor, post.AuthorID) {
		return ErrForbidden
	}

	return s.posts.DeletePost(post)
}

// AddComment 评论作者取自认证身份，文章取自路径
func (s *postService) AddComment(actorID, postID, text string) (*model.Comment, error) {
	if _, err := s.posts.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: actorID,
		Text:     text,
	}

	if err := s.posts.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// RatePost 评分，取值 [1,5]，同一作者对同一文章只能评一次
func (s *postService) RatePost(actorID, postID string, value int) (*model.Rating, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.posts.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rated, err := s.posts.HasRated(postID, actorID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, ErrDuplicateRating
	}

	rating := &model.Rating{
		PostID:   postID,
		AuthorID: actorID,
		Rating:   value,
	}

	if err := s.posts.CreateRating(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// ToggleLike 翻转点赞状态，返回翻转后是否处于点赞态
func (s *postService) ToggleLike(actorID, postID string) (bool, error) {
	if _, err := s.posts.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	return s.engagement.ToggleLike(postID, actorID)
}

// ToggleFavorite 翻转收藏状态，返回翻转后是否处于收藏态
func (s *postService) ToggleFavorite(actorID, postID string) (bool, error) {
	if _, err := s.posts.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	list, err := s.engagement.GetOrCreateFavoriteList(actorID)
	if err != nil {
		return false, err
	}
	return s.engagement.ToggleFavorite(list.ID, postID)
}

// GetFavorites 当前用户收藏夹，内嵌组合后的文章
func (s *postService) GetFavorites(actorID, baseURL string) ([]composer.FavoriteView, error) {
	list, err := s.engagement.GetOrCreateFavoriteList(actorID)
	if err != nil {
		return nil, err
	}

	favorites, err := s.engagement.GetFavorites(list.ID)
	if err != nil {
		return nil, err
	}

	posts, err := s.engagement.GetFavoritePosts(list.ID)
	if err != nil {
		return nil, err
	}

	views := make([]composer.FavoriteView, 0, len(favorites))
	for i := range favorites {
		views = append(views, composer.ComposeFavorite(&favorites[i], posts, baseURL))
	}
	return views, nil
}

// AddImage 归属通过父文章作者校验
func (s *postService) AddImage(actor policy.Actor, postID, path string) (*model.Image, error) {
	post, err := s.posts.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !policy.Check(policy.ResourceImage, policy.ActionCreate, actor, post.AuthorID) {
		return nil, ErrForbidden
	}

	image := &model.Image{PostID: postID, Path: path}
	if err := s.posts.CreateImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *postService) UpdateImage(actor policy.Actor, imageID, path string) (*model.Image, error) {
	image, err := s.getImageWithOwner(imageID)
	if err != nil {
		return nil, err
	}

	if !policy.Check(policy.ResourceImage, policy.ActionUpdate, actor, image.Post.AuthorID) {
		return nil, ErrForbidden
	}

	image.Path = path
	if err := s.posts.UpdateImage(image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *postService) DeleteImage(actor policy.Actor, imageID string) error {
	image, err := s.getImageWithOwner(imageID)
	if err != nil {
		return err
	}

	if !policy.Check(policy.ResourceImage, policy.ActionDelete, actor, image.Post.AuthorID) {
		return ErrForbidden
	}

	return s.posts.DeleteImage(image)
}

func (s *postService) getImageWithOwner(imageID string) (*model.Image, error) {
	image, err := s.posts.GetImageByID(imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if image.Post == nil {
		return nil, ErrNotFound
	}
	return image, nil
}
