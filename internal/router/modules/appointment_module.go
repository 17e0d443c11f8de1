package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/docline/docline-api/internal/auth"
	handlers "github.com/docline/docline-api/internal/interface/http"
	"github.com/docline/docline-api/internal/interface/middleware"
)

// AppointmentModule wires the appointment routes. All access decisions live
// in the service: the scoped list and the per-record two-sided checks.
type AppointmentModule struct {
	Handler *handlers.AppointmentHandler
	Tokens  *auth.TokenManager
	Redis   *redis.Client
}

func NewAppointmentModule(h *handlers.AppointmentHandler, tokens *auth.TokenManager, rdb *redis.Client) *AppointmentModule {
	return &AppointmentModule{Handler: h, Tokens: tokens, Redis: rdb}
}

func (m *AppointmentModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/appointments")
	g.Use(middleware.Auth(m.Tokens))
	g.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByAccount(), nil))
	{
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.POST("", m.Handler.Create)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
