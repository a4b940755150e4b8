// Package handlers implements the Mentora REST endpoints on top of the store
// repositories.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"mentora/backend/internal/logger"
	"mentora/backend/internal/services"
	"mentora/backend/internal/store"
)

const defaultTimeout = 10 * time.Second

// UploadSigner issues ImageKit upload signatures.
type UploadSigner interface {
	Sign() (services.UploadAuth, error)
}

// PaymentIntentCreator creates a card payment intent and returns its client secret.
type PaymentIntentCreator interface {
	CreatePaymentIntent(ctx context.Context, amountInCents int64) (string, error)
}

type Options struct {
	Store    *store.Store
	Logger   *logger.Logger
	Signer   UploadSigner
	Payments PaymentIntentCreator
	// Timeout bounds the store calls of a single request.
	Timeout time.Duration
}

type Handler struct {
	store    *store.Store
	log      *logger.Logger
	signer   UploadSigner
	payments PaymentIntentCreator
	timeout  time.Duration
}

func New(opts Options) *Handler {
	registerValidation()

	h := &Handler{
		store:    opts.Store,
		log:      opts.Logger,
		signer:   opts.Signer,
		payments: opts.Payments,
		timeout:  opts.Timeout,
	}
	if h.log == nil {
		h.log = logger.Discard()
	}
	if h.timeout <= 0 {
		h.timeout = defaultTimeout
	}
	return h
}

// requestContext derives the store-call context from the inbound request so
// a disconnected client cancels its queries.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
