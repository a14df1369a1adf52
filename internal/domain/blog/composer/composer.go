package composer

import (
	"math"
	"strings"

	accountModel "blog_crud_jwt/internal/domain/account/model"
	"blog_crud_jwt/internal/domain/blog/model"
)

// 时间展示格式 dd/mm/yy HH:MM:SS
const timeLayout = "02/01/06 15:04:05"

// AnonymousLabel 作者姓名全空时的兜底展示
const AnonymousLabel = "Anonymous"

// AuthorView 作者的对外表示
type AuthorView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName,omitempty"` // 仅在姓名全空时填充兜底标签
}

// CommentView 评论的对外表示
type CommentView struct {
	PostID    string     `json:"postId"`
	Text      string     `json:"text"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
	Author    AuthorView `json:"author"`
}

// PostView 文章的组合表示：自有字段加派生字段
type PostView struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Text      string        `json:"text"`
	CreatedAt string        `json:"createdAt"`
	Category  string        `json:"category"` // 只暴露分类标题
	Author    AuthorView    `json:"author"`
	Likes     int           `json:"likes"`  // 当前处于点赞态的行数
	Rating    float64       `json:"rating"` // 平均分，保留1位小数，无评分时为0
	Images    []string      `json:"images"`
	Comments  []CommentView `json:"comments"`
}

// FavoriteView 收藏项表示，内嵌完整组合的文章列表
type FavoriteView struct {
	ID          string     `json:"id"`
	IsFavorited bool       `json:"isFavorited"`
	Favorites   []PostView `json:"favorites"`
}

// ComposeAuthor 组合作者表示，姓名全空时替换为兜底标签
func ComposeAuthor(user *accountModel.User) AuthorView {
	view := AuthorView{}
	if user == nil {
		view.FullName = AnonymousLabel
		return view
	}
	view.FirstName = user.FirstName
	view.LastName = user.LastName
	if user.FirstName == "" && user.LastName == "" {
		view.FullName = AnonymousLabel
	}
	return view
}

// ComposeComment 组合评论表示
func ComposeComment(comment *model.Comment) CommentView {
	return CommentView{
		PostID:    comment.PostID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Format(timeLayout),
		UpdatedAt: comment.UpdatedAt.Format(timeLayout),
		Author:    ComposeAuthor(comment.Author),
	}
}

// ComposeImageURL 图片的对外地址
// 无资源时为空串；相对路径在有 baseURL 时拼成绝对地址
func ComposeImageURL(image *model.Image, baseURL string) string {
	if image.Path == "" {
		return ""
	}
	if strings.HasPrefix(image.Path, "http://") || strings.HasPrefix(image.Path, "https://") {
		return image.Path
	}
	if baseURL == "" {
		return image.Path
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(image.Path, "/")
}

// ComposePost 组合文章表示
// baseURL 由调用方显式传入，不依赖任何隐式请求上下文
func ComposePost(post *model.Post, baseURL string) PostView {
	view := PostView{
		ID:        post.ID,
		Title:     post.Title,
		Text:      post.Text,
		CreatedAt: post.CreatedAt.Format(timeLayout),
		Author:    ComposeAuthor(post.Author),
		Likes:     likeCount(post.Likes),
		Rating:    meanRating(post.Ratings),
		Images:    make([]string, 0, len(post.Images)),
		Comments:  make([]CommentView, 0, len(post.Comments)),
	}

	if post.Category != nil {
		view.Category = post.Category.Title
	}
	for i := range post.Images {
		view.Images = append(view.Images, ComposeImageURL(&post.Images[i], baseURL))
	}
	for i := range post.Comments {
		view.Comments = append(view.Comments, ComposeComment(&post.Comments[i]))
	}

	return view
}

// ComposeFavorite 组合收藏项，内嵌组合后的文章
func ComposeFavorite(favorite *model.Favorite, posts []model.Post, baseURL string) FavoriteView {
	view := FavoriteView{
		ID:          favorite.ID,
		IsFavorited: favorite.IsFavorited,
		Favorites:   make([]PostView, 0, len(posts)),
	}
	for i := range posts {
		view.Favorites = append(view.Favorites, ComposePost(&posts[i], baseURL))
	}
	return view
}

// likeCount 只统计当前点赞态的行
func likeCount(likes []model.Like) int {
	count := 0
	for _, like := range likes {
		if like.IsLiked {
			count++
		}
	}
	return count
}

// meanRating 算术平均，保留1位小数，无评分时为0
func meanRating(ratings []model.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	total := 0
	for _, r := range ratings {
		total += r.Rating
	}
	mean := float64(total) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
