package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chaudhari-piyush/talentlens/internal/shared/server/middleware"
	"github.com/chaudhari-piyush/talentlens/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.POST("/me/accept-terms", h.acceptTerms)
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err, "failed to load user")
		return
	}
	respond.JSON(c, http.StatusOK, userPayload(user))
}

func (h *Handler) acceptTerms(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.AcceptTerms(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrTermsAlreadyAccepted) {
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrTermsAlreadyAccepted.Error(), nil)
			return
		}
		h.writeError(c, err, "failed to accept terms")
		return
	}
	respond.JSON(c, http.StatusOK, userPayload(user))
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
}

func userPayload(user User) gin.H {
	payload := gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"fullName":      user.FullName,
		"termsAccepted": user.TermsAccepted,
	}
	if user.TermsAcceptedAt != nil {
		payload["termsAcceptedAt"] = user.TermsAcceptedAt
	}
	return payload
}
