package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/services"
)

type FeedbackHandler struct {
	log *logger.Logger
	svc services.FeedbackService
}

func NewFeedbackHandler(log *logger.Logger, svc services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		log: log.With("handler", "FeedbackHandler"),
		svc: svc,
	}
}

type feedbackItemRequest struct {
	ProductID       string `json:"productId" binding:"required"`
	ProductTitle    string `json:"productTitle"`
	ProductImageURL string `json:"productImageUrl"`
	FulfillmentID   string `json:"fulfillmentId"`
	Rating          *int   `json:"rating"`
	Comments        string `json:"comments"`
}

type submitFeedbackRequest struct {
	QuestionnaireID string                `json:"questionnaireId" binding:"required"`
	Feedback        []feedbackItemRequest `json:"feedback" binding:"required,min=1,dive"`
}

// POST /api/feedback/submit
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	questionnaireID, err := uuid.Parse(req.QuestionnaireID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_questionnaire_id", err)
		return
	}

	items := make([]services.FeedbackItem, 0, len(req.Feedback))
	for _, item := range req.Feedback {
		items = append(items, services.FeedbackItem{
			ProductID:       item.ProductID,
			ProductTitle:    item.ProductTitle,
			ProductImageURL: item.ProductImageURL,
			FulfillmentID:   item.FulfillmentID,
			Rating:          item.Rating,
			Comments:        item.Comments,
		})
	}

	count, err := h.svc.Submit(c.Request.Context(), questionnaireID, items)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionnaireNotFound):
			RespondError(c, http.StatusNotFound, "questionnaire_not_found", err)
		case errors.Is(err, services.ErrInvalidInput):
			RespondError(c, http.StatusBadRequest, "invalid_request", err)
		default:
			h.log.Error("Feedback submission failed", "questionnaire_id", questionnaireID, "error", err)
			RespondError(c, http.StatusInternalServerError, "submit_failed", errors.New("failed to submit feedback"))
		}
		return
	}

	RespondOK(c, gin.H{"success": true, "feedbackCount": count})
}

// GET /api/feedback/:questionnaireId
// Backing data for the customer-facing feedback form.
func (h *FeedbackHandler) GetForm(c *gin.Context) {
	questionnaireID, err := uuid.Parse(c.Param("questionnaireId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_questionnaire_id", err)
		return
	}

	form, err := h.svc.GetForm(c.Request.Context(), questionnaireID)
	if err != nil {
		if errors.Is(err, services.ErrQuestionnaireNotFound) {
			RespondError(c, http.StatusNotFound, "questionnaire_not_found", err)
			return
		}
		h.log.Error("Feedback form lookup failed", "questionnaire_id", questionnaireID, "error", err)
		RespondError(c, http.StatusInternalServerError, "form_lookup_failed", errors.New("failed to load feedback form"))
		return
	}

	RespondOK(c, gin.H{"form": form})
}
