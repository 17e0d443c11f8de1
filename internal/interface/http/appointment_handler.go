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

type AppointmentHandler struct {
	Svc    *application.AppointmentService
	Logger *logrus.Logger
}

func NewAppointmentHandler(svc *application.AppointmentService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger}
}

type appointmentRequest struct {
	PatientID    int64     `json:"patientId" binding:"omitempty,gt=0"`
	DoctorID     int64     `json:"doctorId" binding:"required,gt=0"`
	Date         time.Time `json:"date" binding:"required"`
	Description  string    `json:"description" binding:"omitempty"`
	NumberOfBeds int       `json:"numberOfBeds" binding:"omitempty,gt=0"`
	Condition    string    `json:"condition" binding:"omitempty"`
}

type updateAppointmentRequest struct {
	PatientID    int64     `json:"patientId" binding:"omitempty,gt=0"`
	DoctorID     int64     `json:"doctorId" binding:"omitempty,gt=0"`
	Date         time.Time `json:"date" binding:"omitempty"`
	Description  string    `json:"description" binding:"omitempty"`
	NumberOfBeds int       `json:"numberOfBeds" binding:"omitempty,gt=0"`
	Condition    string    `json:"condition" binding:"omitempty"`
}

// List returns the appointments visible to the caller, already deduplicated
// by the scoped query.
func (h *AppointmentHandler) List(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)
	items, err := h.Svc.List(c.Request.Context(), sess)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "appointments",
		map[string]any{"count": len(items)})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sess, _ := middleware.SessionFrom(c)
	a, err := h.Svc.GetByID(c.Request.Context(), sess, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "appointment", nil)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, _ := middleware.SessionFrom(c)
	a, err := h.Svc.Create(c.Request.Context(), sess, application.AppointmentInput{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		Date:         req.Date,
		Description:  req.Description,
		NumberOfBeds: req.NumberOfBeds,
		Condition:    req.Condition,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "appointment created", nil)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, _ := middleware.SessionFrom(c)
	a, err := h.Svc.Update(c.Request.Context(), sess, id, application.AppointmentInput{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		Date:         req.Date,
		Description:  req.Description,
		NumberOfBeds: req.NumberOfBeds,
		Condition:    req.Condition,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a, "appointment updated", nil)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sess, _ := middleware.SessionFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), sess, id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
