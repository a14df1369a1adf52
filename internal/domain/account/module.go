package account

import (
	"blog_crud_jwt/internal/domain/account/handler"
	"blog_crud_jwt/internal/domain/account/repository"
	"blog_crud_jwt/internal/domain/account/service"
	"blog_crud_jwt/internal/pkg/middleware"
	"blog_crud_jwt/internal/pkg/registry"
	"blog_crud_jwt/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

// AccountModule 账号模块
type AccountModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&AccountModule{})
}

func (m *AccountModule) Name() string {
	return "account"
}

func (m *AccountModule) Priority() int {
	// 账号模块优先级最高，blog 模块依赖它
	return 1
}

func (m *AccountModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	tokenStore := token.NewRedisStore(ctx.Redis)
	accountService := service.NewAccountService(userRepo, tokenStore, ctx.Mailer)
	accountHandler := handler.NewAccountHandler(accountService)

	// 2. 路由注册
	setupRoutes(ctx.Router, accountHandler, tokenStore)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.AccountHandler, tokens token.Store) {
	// 公开路由
	api := r.Group("/api/v1")
	{
		api.POST("/register/", h.Register)
		api.GET("/activate/", h.Activate)
		api.POST("/login/", h.Login)
		api.POST("/forgot/", h.ForgotPassword)
	}

	// 受保护的路由
	auth := r.Group("/api/v1")
	auth.Use(middleware.AuthMiddleware(tokens))
	{
		auth.POST("/logout/", h.Logout)
		auth.POST("/change-password/", h.ChangePassword)
		auth.GET("/profile/", h.GetProfiles)
		auth.GET("/profile/:id/", h.GetProfile)
	}
}
