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

// DoctorModule wires the doctor directory: readable by any signed-in user,
// created and deleted by admins, edited by the owning doctor or an admin.
type DoctorModule struct {
	Handler *handlers.DoctorHandler
	Tokens  *auth.TokenManager
	Redis   *redis.Client
}

func NewDoctorModule(h *handlers.DoctorHandler, tokens *auth.TokenManager, rdb *redis.Client) *DoctorModule {
	return &DoctorModule{Handler: h, Tokens: tokens, Redis: rdb}
}

func (m *DoctorModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/doctors")
	g.Use(middleware.Auth(m.Tokens))
	g.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByAccount(), nil))
	{
		g.GET("", m.Handler.List)
		g.GET("/search", m.Handler.Search)
		g.GET("/:id", m.Handler.Get)
		g.POST("", middleware.RequireRole(entity.RoleAdmin), m.Handler.Create)
		g.PUT("/:id", m.Handler.Update)
		g.POST("/:id/photo", m.Handler.UploadPhoto)
		g.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), m.Handler.Delete)
	}
}
