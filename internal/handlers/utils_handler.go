// ./mentora-backend/internal/handlers/utils_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"mentora/backend/internal/services"
)

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Mentora LMS API Running"})
}

// HealthCheck provides a simple health check endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetImageKitSignature hands out a short-lived upload signature.
func (h *Handler) GetImageKitSignature(c *gin.Context) {
	auth, err := h.signer.Sign()
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	c.JSON(http.StatusOK, auth)
}

// GetStatistics reports approximate collection sizes.
func (h *Handler) GetStatistics(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	stats, err := h.store.Stats.Estimate(ctx)
	if err != nil {
		h.serverError(c, successEnvelope, "Internal server error", err)
		return
	}
	c.JSON(http.StatusOK, with(successEnvelope.ok("Statistics fetched successfully"), gin.H{"data": stats}))
}

type PaymentIntentPayload struct {
	Amount json.RawMessage `json:"amount"`
}

// CreatePaymentIntent accepts a dollar amount and returns the Stripe client secret.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var payload PaymentIntentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	var amount float64
	if err := json.Unmarshal(payload.Amount, &amount); err != nil || amount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}
	if amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount cannot be negative"})
		return
	}
	cents, err := services.AmountInCents(amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	clientSecret, err := h.payments.CreatePaymentIntent(ctx, cents)
	if err != nil {
		h.log.Error("creating payment intent", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": services.PaymentErrorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}
