package blog

import (
	"blog_crud_jwt/internal/domain/blog/handler"
	"blog_crud_jwt/internal/domain/blog/policy"
	"blog_crud_jwt/internal/domain/blog/repository"
	"blog_crud_jwt/internal/domain/blog/service"
	"blog_crud_jwt/internal/pkg/config"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/registry"
	"blog_crud_jwt/internal/pkg/token"
	"blog_crud_jwt/pkg/cache"

	"github.com/gin-gonic/gin"
)

// BlogModule 内容模块
type BlogModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&BlogModule{})
}

func (m *BlogModule) Name() string {
	return "blog"
}

func (m *BlogModule) Priority() int {
	// 依赖 account 模块的用户表
	return 2
}

// routeBindings 本模块注册的全部 (resource, action) 对
// 启动时逐一校验策略表，漏配的路由直接拒绝启动
var routeBindings = [][2]string{
	{policy.ResourceCategory, string(policy.ActionList)},
	{policy.ResourceCategory, string(policy.ActionRetrieve)},
	{policy.ResourcePost, string(policy.ActionList)},
	{policy.ResourcePost, string(policy.ActionRetrieve)},
	{policy.ResourcePost, string(policy.ActionSearch)},
	{policy.ResourcePost, string(policy.ActionMyPosts)},
	{policy.ResourcePost, string(policy.ActionCreate)},
	{policy.ResourcePost, string(policy.ActionUpdate)},
	{policy.ResourcePost, string(policy.ActionDelete)},
	{policy.ResourcePost, string(policy.ActionComment)},
	{policy.ResourcePost, string(policy.ActionRate)},
	{policy.ResourcePost, string(policy.ActionLike)},
	{policy.ResourcePost, string(policy.ActionFavorite)},
	{policy.ResourceImage, string(policy.ActionCreate)},
	{policy.ResourceImage, string(policy.ActionUpdate)},
	{policy.ResourceImage, string(policy.ActionDelete)},
	{policy.ResourceImage, string(policy.ActionUpload)},
	{policy.ResourceFavorite, string(policy.ActionList)},
}

func (m *BlogModule) Init(ctx *registry.ModuleContext) error {
	// 1. 策略表完整性检查
	if err := policy.Validate(routeBindings); err != nil {
		return err
	}

	// 2. 依赖注入
	postRepo := repository.NewPostRepository(ctx.DB)
	engagementRepo := repository.NewEngagementRepository(ctx.DB)
	categoryRepo := repository.NewCategoryRepository(ctx.DB)

	categoryService := service.NewCategoryService(categoryRepo)
	cacheService := cache.NewRedisCache(ctx.Redis, "blog:")
	postService := service.NewCachedPostService(
		service.NewPostService(postRepo, engagementRepo, categoryRepo),
		cacheService,
	)

	baseURL := config.GlobalConfig.App.BaseURL
	categoryHandler := handler.NewCategoryHandler(categoryService)
	postHandler := handler.NewPostHandler(postService, ctx.Metrics, baseURL)
	imageHandler := handler.NewImageHandler(postService, ctx.Uploader)

	tokenStore := token.NewRedisStore(ctx.Redis)

	// 3. 路由注册
	setupRoutes(ctx.Router, categoryHandler, postHandler, imageHandler, tokenStore)

	return nil
}

func setupRoutes(r *gin.Engine, ch *handler.CategoryHandler, ph *handler.PostHandler, ih *handler.ImageHandler, tokens token.Store) {
	// 公开读路由，带 token 时识别身份
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(tokens))
	{
		api.GET("/categories/", ch.List)
		api.GET("/categories/:slug/", ch.Get)
		api.GET("/posts/", ph.List)
		api.GET("/posts/search/", ph.Search)
		api.GET("/posts/:id/", ph.Get)
	}

	// 受保护的路由
	auth := r.Group("/api/v1")
	auth.Use(middleware.AuthMiddleware(tokens))
	{
		auth.GET("/posts/my/", ph.MyPosts)
		auth.POST("/posts/", ph.Create)
		auth.PUT("/posts/:id/", ph.Update)
		auth.DELETE("/posts/:id/", ph.Delete)
		auth.POST("/posts/:id/comment/", ph.Comment)
		auth.POST("/posts/:id/rating/", ph.Rate)
		auth.POST("/posts/:id/like/", ph.Like)
		auth.POST("/posts/:id/favorite/", ph.Favorite)

		auth.GET("/favorite/", ph.Favorites)

		auth.POST("/upload/", ih.Upload)
		auth.POST("/images/", ih.Create)
		auth.PUT("/images/:id/", ih.Update)
		auth.DELETE("/images/:id/", ih.Delete)
	}
}
