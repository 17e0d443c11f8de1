package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/internal/application"
	"github.com/docline/docline-api/internal/interface/middleware"
	"github.com/docline/docline-api/pkg/response"
	"github.com/docline/docline-api/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email      string    `json:"email" binding:"required,email"`
	Password   string    `json:"password" binding:"required,pwd"`
	Name       string    `json:"name" binding:"required,max=255"`
	Street     string    `json:"street" binding:"omitempty,max=255"`
	Number     string    `json:"number" binding:"omitempty,max=255"`
	PostalCode string    `json:"postalCode" binding:"omitempty,max=255"`
	City       string    `json:"city" binding:"omitempty,max=255"`
	Birthdate  time.Time `json:"birthdate" binding:"omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1"`
}

// Register creates a patient account and signs it in.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Street:     req.Street,
		Number:     req.Number,
		PostalCode: req.PostalCode,
		City:       req.City,
		Birthdate:  req.Birthdate,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "account created", nil)
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "login successful",
		map[string]any{"expires_at": res.ExpiresAt})
}

// Me returns the calling account.
func (h *AccountHandler) Me(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)
	u, err := h.Svc.GetByID(c.Request.Context(), sess.AccountID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

// List returns all accounts. Admin-only, enforced at the route.
func (h *AccountHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users",
		map[string]any{"count": len(users)})
}

// UpdateRoles replaces an account's role set. Admin-only.
func (h *AccountHandler) UpdateRoles(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateRoles(c.Request.Context(), id, req.Roles)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, "roles updated", nil)
}

// Delete removes an account and everything that cascades from it. Admin-only.
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
