package candidates

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chaudhari-piyush/talentlens/internal/jobs"
	"github.com/chaudhari-piyush/talentlens/internal/shared/server/respond"
)

const maxResumeSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches candidate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/candidates", h.create)
	rg.GET("/candidates", h.list)
	rg.GET("/candidates/:id", h.get)
	rg.GET("/candidates/:id/resume", h.downloadResume)
	rg.GET("/candidates/:id/guide", h.downloadGuide)
	rg.POST("/candidates/:id/rescan", h.rescan)
	rg.DELETE("/candidates/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxResumeSize)

	jobID := c.PostForm("job_id")
	name := c.PostForm("name")
	email := c.PostForm("email")
	phone := c.PostForm("phone")

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return
	}
	defer file.Close()

	cand, err := h.Svc.Create(c.Request.Context(), jobID, name, email, phone, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotPDF):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrNotPDF.Error(), nil)
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create candidate", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, cand)
}

func (h *Handler) list(c *gin.Context) {
	limit := 100
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), c.Query("job_id"), limit, offset)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list candidates", nil)
		return
	}
	if list == nil {
		list = []Candidate{}
	}
	respond.JSON(c, http.StatusOK, list)
}

func (h *Handler) get(c *gin.Context) {
	cand, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch candidate")
		return
	}
	respond.JSON(c, http.StatusOK, cand)
}

func (h *Handler) downloadResume(c *gin.Context) {
	cand, body, err := h.Svc.OpenResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to load resume")
		return
	}
	defer body.Close()

	h.streamPDF(c, cand.ResumeFilename, body)
}

func (h *Handler) downloadGuide(c *gin.Context) {
	cand, body, err := h.Svc.OpenGuide(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrGuideNotReady) {
			respond.Error(c, http.StatusNotFound, "not_found", ErrGuideNotReady.Error(), nil)
			return
		}
		h.writeError(c, err, "failed to load interview guide")
		return
	}
	defer body.Close()

	h.streamPDF(c, cand.GuideFilename, body)
}

func (h *Handler) streamPDF(c *gin.Context, fileName string, body io.Reader) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (h *Handler) rescan(c *gin.Context) {
	if err := h.Svc.Rescan(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to rescan resume")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "Resume rescanning initiated"})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete candidate")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"message": "Candidate deleted successfully"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "candidate not found", nil)
	case errors.Is(err, jobs.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
