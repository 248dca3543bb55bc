package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/services"
)

type QuestionnaireHandler struct {
	log    *logger.Logger
	svc    services.QuestionnaireService
	recSvc services.RecommendationService
}

func NewQuestionnaireHandler(log *logger.Logger, svc services.QuestionnaireService, recSvc services.RecommendationService) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		log:    log.With("handler", "QuestionnaireHandler"),
		svc:    svc,
		recSvc: recSvc,
	}
}

type submitQuestionnaireRequest struct {
	OrderID          string `json:"orderId" binding:"required"`
	DogName          string `json:"dogName" binding:"required"`
	DogGender        string `json:"dogGender"`
	DogSize          string `json:"dogSize"`
	Breed            string `json:"breed" binding:"required"`
	Birthday         string `json:"birthday"`
	AdoptionDay      string `json:"adoptionDay"`
	ToyPreference    string `json:"toyPreference"`
	Allergies        string `json:"allergies"`
	Email            string `json:"email" binding:"required,email"`
	SubscriptionPlan string `json:"subscriptionPlan"`
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// POST /api/questionnaire/submit
func (h *QuestionnaireHandler) Submit(c *gin.Context) {
	var req submitQuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	birthday, err := parseOptionalDate(req.Birthday)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_birthday", err)
		return
	}
	adoptionDay, err := parseOptionalDate(req.AdoptionDay)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_adoption_day", err)
		return
	}

	questionnaire, err := h.svc.Intake(c.Request.Context(), services.QuestionnaireIntake{
		OrderID:          req.OrderID,
		DogName:          req.DogName,
		DogGender:        req.DogGender,
		DogSize:          req.DogSize,
		Breed:            req.Breed,
		Birthday:         birthday,
		AdoptionDay:      adoptionDay,
		ToyPreference:    req.ToyPreference,
		Allergies:        req.Allergies,
		Email:            req.Email,
		SubscriptionPlan: req.SubscriptionPlan,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			RespondError(c, http.StatusBadRequest, "invalid_request", err)
		case errors.Is(err, services.ErrDuplicateOrder):
			RespondError(c, http.StatusConflict, "duplicate_order", err)
		default:
			h.log.Error("Questionnaire intake failed", "order_id", req.OrderID, "error", err)
			RespondError(c, http.StatusInternalServerError, "intake_failed", errors.New("failed to submit questionnaire"))
		}
		return
	}

	RespondOK(c, gin.H{"success": true, "questionnaireId": questionnaire.ID})
}

// GET /api/questionnaires
func (h *QuestionnaireHandler) List(c *gin.Context) {
	questionnaires, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("Questionnaire list failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "list_failed", errors.New("failed to list questionnaires"))
		return
	}
	RespondOK(c, gin.H{"questionnaires": questionnaires})
}

// GET /api/questionnaires/:id
func (h *QuestionnaireHandler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_questionnaire_id", err)
		return
	}

	questionnaire, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrQuestionnaireNotFound) {
			RespondError(c, http.StatusNotFound, "questionnaire_not_found", err)
			return
		}
		h.log.Error("Questionnaire detail failed", "questionnaire_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "detail_failed", errors.New("failed to load questionnaire"))
		return
	}

	RespondOK(c, gin.H{"questionnaire": questionnaire})
}

// GET /api/questionnaires/:id/feedback-summary
func (h *QuestionnaireHandler) FeedbackSummary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_questionnaire_id", err)
		return
	}

	summary, err := h.recSvc.FeedbackSummary(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrQuestionnaireNotFound) {
			RespondError(c, http.StatusNotFound, "questionnaire_not_found", err)
			return
		}
		h.log.Error("Feedback summary failed", "questionnaire_id", id, "error", err)
		RespondError(c, http.StatusInternalServerError, "summary_failed", errors.New("failed to generate summary"))
		return
	}

	RespondOK(c, gin.H{"summary": summary})
}
