// Package payment bridges checkout and webhook notifications to the
// payment provider.
package payment

import (
	"context"
	"errors"
)

// Normalised event types. Provider specific statuses are mapped onto these
// before anything else sees them.
const (
	EventPaymentSucceeded  = "payment_intent.succeeded"
	EventPaymentFailed     = "payment_intent.payment_failed"
	EventCheckoutCompleted = "checkout.session.completed"
)

// Metadata keys attached to every intent.
const (
	MetaProductID = "productId"
	MetaCoins     = "coin"
	MetaUserID    = "user_id"
)

var (
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrInvalidNotification = errors.New("invalid notification")
)

type IntentRequest struct {
	ProductID string
	Title     string
	Amount    float64
	Coins     int
	UserID    string
	Email     string
}

type Intent struct {
	ID           string
	ClientSecret string
}

// Notification is the raw webhook delivery.
type Notification struct {
	Topic     string
	DataID    string
	RequestID string
	Signature string
}

type Event struct {
	ID       string
	Type     string
	Metadata map[string]string
}

type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)

	// ParseEvent authenticates the notification and resolves it into a
	// normalised Event. Authentication failures are ErrInvalidSignature.
	ParseEvent(ctx context.Context, n Notification) (*Event, error)
}
