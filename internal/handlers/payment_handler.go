package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/middleware"
	"github.com/BruksfildServices01/estate-listings/internal/payment"
	paymentuc "github.com/BruksfildServices01/estate-listings/internal/usecase/payment"
)

const maxWebhookBody = 64 << 10

type intentCreator interface {
	Execute(ctx context.Context, in paymentuc.CreateIntentInput) (*payment.Intent, error)
}

type webhookProcessor interface {
	Execute(ctx context.Context, n payment.Notification) error
}

type PaymentHandler struct {
	intent  intentCreator
	webhook webhookProcessor
}

func NewPaymentHandler(intent intentCreator, webhook webhookProcessor) *PaymentHandler {
	return &PaymentHandler{intent: intent, webhook: webhook}
}

// ======================================================
// INTENT
// ======================================================

type CreateIntentRequest struct {
	ProductID  string   `json:"productId"`
	Amount     *float64 `json:"amount"`
	CoinAmount int      `json:"coinAmount"`
	UserID     string   `json:"user_id"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.ProductID) == "" || req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: productId and amount"})
		return
	}

	in := paymentuc.CreateIntentInput{
		ProductID: req.ProductID,
		Amount:    *req.Amount,
		Coins:     req.CoinAmount,
		UserID:    req.UserID,
	}
	if user := middleware.CurrentUser(c); user != nil {
		if in.UserID == "" {
			in.UserID = user.ID
		}
		in.Email = user.Email
	}

	intent, err := h.intent.Execute(c.Request.Context(), in)
	if err != nil {
		if ve, ok := httperr.AsValidation(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("create payment intent failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}

// ======================================================
// WEBHOOK
// ======================================================

type webhookBody struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

func (h *PaymentHandler) Webhook(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: unreadable body"})
		return
	}

	n := notificationFrom(c, raw)

	err = h.webhook.Execute(c.Request.Context(), n)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, payment.ErrInvalidSignature), errors.Is(err, payment.ErrInvalidNotification):
		logger.FromContext(c.Request.Context()).Warn().Err(err).Msg("webhook rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Webhook Error: " + err.Error()})
	default:
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("webhook processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// notificationFrom prefers the query string, which is what the signature
// covers, and falls back to the JSON body.
func notificationFrom(c *gin.Context, raw []byte) payment.Notification {
	var body webhookBody
	if len(bytes.TrimSpace(raw)) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	topic := firstNonEmpty(c.Query("type"), c.Query("topic"), body.Type, body.Topic)
	dataID := firstNonEmpty(c.Query("data.id"), c.Query("id"), rawID(body.Data.ID))

	return payment.Notification{
		Topic:     topic,
		DataID:    dataID,
		RequestID: c.GetHeader("x-request-id"),
		Signature: c.GetHeader("x-signature"),
	}
}

// rawID accepts both "123" and 123.
func rawID(v json.RawMessage) string {
	s := strings.TrimSpace(string(v))
	return strings.Trim(s, `"`)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
