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

type PatientHandler struct {
	Svc    *application.PatientService
	Logger *logrus.Logger
}

func NewPatientHandler(svc *application.PatientService, logger *logrus.Logger) *PatientHandler {
	return &PatientHandler{Svc: svc, Logger: logger}
}

type updatePatientRequest struct {
	Name       string    `json:"name" binding:"omitempty,max=255"`
	Street     string    `json:"street" binding:"omitempty,max=255"`
	Number     string    `json:"number" binding:"omitempty,max=255"`
	PostalCode string    `json:"postalCode" binding:"omitempty,max=255"`
	City       string    `json:"city" binding:"omitempty,max=255"`
	Birthdate  time.Time `json:"birthdate" binding:"omitempty"`
}

// List returns the patients visible to the caller.
func (h *PatientHandler) List(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)
	items, err := h.Svc.List(c.Request.Context(), sess)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "patients",
		map[string]any{"count": len(items)})
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sess, _ := middleware.SessionFrom(c)
	p, err := h.Svc.GetByID(c.Request.Context(), sess, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "patient", nil)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, _ := middleware.SessionFrom(c)
	p, err := h.Svc.Update(c.Request.Context(), sess, id, application.UpdatePatientInput{
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
	response.Success(c, http.StatusOK, p, "patient updated", nil)
}

// Delete removes the patient's account. Admin-only, enforced at the route.
func (h *PatientHandler) Delete(c *gin.Context) {
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
