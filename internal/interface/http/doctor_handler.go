package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/docline/docline-api/internal/application"
	"github.com/docline/docline-api/internal/interface/middleware"
	"github.com/docline/docline-api/pkg/response"
	"github.com/docline/docline-api/pkg/validation"
)

type DoctorHandler struct {
	Svc    *application.DoctorService
	Logger *logrus.Logger
}

func NewDoctorHandler(svc *application.DoctorService, logger *logrus.Logger) *DoctorHandler {
	return &DoctorHandler{Svc: svc, Logger: logger}
}

type createDoctorRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,pwd"`
	Name       string `json:"name" binding:"required,max=255"`
	Speciality string `json:"speciality" binding:"required,max=255"`
	Hospital   string `json:"hospital" binding:"omitempty,max=255"`
	About      string `json:"about" binding:"omitempty"`
}

type updateDoctorRequest struct {
	Name       string `json:"name" binding:"omitempty,max=255"`
	Speciality string `json:"speciality" binding:"omitempty,max=255"`
	Hospital   string `json:"hospital" binding:"omitempty,max=255"`
	About      string `json:"about" binding:"omitempty"`
}

// List returns the doctor directory, visible to every signed-in caller.
func (h *DoctorHandler) List(c *gin.Context) {
	sess, _ := middleware.SessionFrom(c)
	items, err := h.Svc.List(c.Request.Context(), sess)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "doctors",
		map[string]any{"count": len(items)})
}

func (h *DoctorHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	d, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "doctor", nil)
}

// Create registers a doctor account with its profile. Admin-only.
func (h *DoctorHandler) Create(c *gin.Context) {
	var req createDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	d, err := h.Svc.Create(c.Request.Context(), application.CreateDoctorInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Speciality: req.Speciality,
		Hospital:   req.Hospital,
		About:      req.About,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, d, "doctor created", nil)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	sess, _ := middleware.SessionFrom(c)
	d, err := h.Svc.Update(c.Request.Context(), sess, id, application.UpdateDoctorInput{
		Name:       req.Name,
		Speciality: req.Speciality,
		Hospital:   req.Hospital,
		About:      req.About,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "doctor updated", nil)
}

// Delete removes the doctor's account. Admin-only.
func (h *DoctorHandler) Delete(c *gin.Context) {
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

// Search queries the directory index.
func (h *DoctorHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query",
			map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results",
		map[string]any{"count": len(hits)})
}

// UploadPhoto accepts a multipart photo and stores it for the profile.
func (h *DoctorHandler) UploadPhoto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing photo file",
			map[string]string{"photo": "is required"})
		return
	}
	defer func() { _ = file.Close() }()

	sess, _ := middleware.SessionFrom(c)
	url, err := h.Svc.UploadPhoto(c.Request.Context(), sess, id, file,
		header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, map[string]any{"photo": url}, "photo uploaded", nil)
}
