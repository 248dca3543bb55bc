package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/services"
)

type RecommendationHandler struct {
	log *logger.Logger
	svc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, svc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log: log.With("handler", "RecommendationHandler"),
		svc: svc,
	}
}

// POST /api/recommendations/:id/generate
// Ranks the live catalog for the questionnaire and stores this month's
// snapshot; a repeat call inside the month overwrites it.
func (h *RecommendationHandler) Generate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_questionnaire_id", err)
		return
	}

	result, err := h.svc.Generate(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuestionnaireNotFound):
			RespondError(c, http.StatusNotFound, "questionnaire_not_found", err)
		case errors.Is(err, services.ErrModelResponseInvalid):
			RespondError(c, http.StatusBadGateway, "model_response_invalid", err)
		default:
			h.log.Error("Recommendation generation failed", "questionnaire_id", id, "error", err)
			RespondError(c, http.StatusBadGateway, "generation_failed", errors.New("failed to generate recommendations"))
		}
		return
	}

	RespondOK(c, gin.H{
		"success":         true,
		"monthYear":       result.Snapshot.MonthYear,
		"recommendations": result.Recommendations,
	})
}
