package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
	"github.com/pawcrate/pawcrate-backend/internal/services"
	"github.com/pawcrate/pawcrate-backend/internal/types"
)

type WebhooksHandler struct {
	log *logger.Logger
	svc services.FulfillmentService
}

func NewWebhooksHandler(log *logger.Logger, svc services.FulfillmentService) *WebhooksHandler {
	return &WebhooksHandler{
		log: log.With("handler", "WebhooksHandler"),
		svc: svc,
	}
}

// Shopify sends numeric ids; json.Number keeps them intact as strings.
type fulfillmentWebhookPayload struct {
	ID        json.Number `json:"id"`
	OrderID   json.Number `json:"order_id"`
	Status    string      `json:"status"`
	LineItems []struct {
		ProductID json.Number `json:"product_id"`
		Name      string      `json:"name"`
		Quantity  int         `json:"quantity"`
	} `json:"line_items"`
}

// POST /webhooks/fulfillments/create
func (h *WebhooksHandler) FulfillmentCreated(c *gin.Context) {
	var payload fulfillmentWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	if payload.ID.String() == "" || payload.OrderID.String() == "" {
		RespondError(c, http.StatusBadRequest, "invalid_payload", errors.New("missing fulfillment id or order id"))
		return
	}

	h.log.Info("Fulfillment created webhook received",
		"fulfillment_id", payload.ID.String(),
		"order_id", payload.OrderID.String(),
		"status", payload.Status)

	products := make([]types.ShippedProduct, 0, len(payload.LineItems))
	for _, item := range payload.LineItems {
		products = append(products, types.ShippedProduct{
			ID:    item.ProductID.String(),
			Title: item.Name,
		})
	}

	tracking, err := h.svc.TrackFulfillment(c.Request.Context(), payload.ID.String(), payload.OrderID.String(), products)
	if err != nil {
		h.log.Error("Fulfillment webhook processing failed", "order_id", payload.OrderID.String(), "error", err)
		RespondError(c, http.StatusInternalServerError, "webhook_failed", errors.New("webhook processing failed"))
		return
	}

	RespondOK(c, gin.H{"success": true, "trackingId": tracking.ID})
}

type orderWebhookPayload struct {
	ID          json.Number `json:"id"`
	OrderNumber json.Number `json:"order_number"`
	Email       string      `json:"email"`
}

// POST /webhooks/orders/create
// Orders are only acknowledged here; the questionnaire links to the order
// later at intake time.
func (h *WebhooksHandler) OrderCreated(c *gin.Context) {
	var payload orderWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}

	h.log.Info("Order created webhook received",
		"order_id", payload.ID.String(),
		"order_number", payload.OrderNumber.String(),
		"email", payload.Email)

	RespondOK(c, gin.H{"success": true})
}
