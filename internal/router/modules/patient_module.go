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

// PatientModule wires the patient profile routes. Listing applies the
// visibility scope; single-record access is ownership-gated in the service.
type PatientModule struct {
	Handler *handlers.PatientHandler
	Tokens  *auth.TokenManager
	Redis   *redis.Client
}

func NewPatientModule(h *handlers.PatientHandler, tokens *auth.TokenManager, rdb *redis.Client) *PatientModule {
	return &PatientModule{Handler: h, Tokens: tokens, Redis: rdb}
}

func (m *PatientModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/patients")
	g.Use(middleware.Auth(m.Tokens))
	g.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByAccount(), nil))
	{
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), m.Handler.Delete)
	}
}
