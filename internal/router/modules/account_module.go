package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/docline/docline-api/internal/auth"
	"github.com/docline/docline-api/internal/domain/entity"
	handlers "github.com/docline/docline-api/internal/interface/http"
	"github.com/docline/docline-api/internal/interface/middleware"
)

// AccountModule wires registration, login and account administration.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/me; GET /api/users, PUT /api/users/:id/roles and
// DELETE /api/users/:id are ADMIN-only.
type AccountModule struct {
	Handler *handlers.AccountHandler
	Tokens  *auth.TokenManager
	Redis   *redis.Client
}

func NewAccountModule(h *handlers.AccountHandler, tokens *auth.TokenManager, rdb *redis.Client) *AccountModule {
	return &AccountModule{Handler: h, Tokens: tokens, Redis: rdb}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	protected := rg.Group("/")
	protected.Use(middleware.Auth(m.Tokens))
	protected.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByAccount(), nil))
	{
		protected.GET("/me", m.Handler.Me)

		admin := protected.Group("/")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.GET("/users", m.Handler.List)
			admin.PUT("/users/:id/roles", m.Handler.UpdateRoles)
			admin.DELETE("/users/:id", m.Handler.Delete)
		}
	}
}
