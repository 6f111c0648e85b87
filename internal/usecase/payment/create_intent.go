package payment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	creditdomain "github.com/BruksfildServices01/estate-listings/internal/domain/credit"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/payment"
)

type CreateIntentInput struct {
	ProductID string
	Amount    float64
	Coins     int
	UserID    string
	Email     string
}

type CreateIntent struct {
	provider payment.Provider
	audit    audit.Sink
}

func NewCreateIntent(provider payment.Provider, sink audit.Sink) *CreateIntent {
	return &CreateIntent{provider: provider, audit: sink}
}

// Execute opens a checkout for a catalog credit package. The plan's price
// and credit count replace whatever the client sent.
func (uc *CreateIntent) Execute(ctx context.Context, in CreateIntentInput) (*payment.Intent, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)

	var fields []httperr.FieldError
	plan, known := creditdomain.FindPlan(in.ProductID)
	switch {
	case in.ProductID == "":
		fields = append(fields, httperr.FieldError{Field: "productId", Message: "Field is required"})
	case !known:
		fields = append(fields, httperr.FieldError{Field: "productId", Message: "Unknown product"})
	}
	if in.Amount <= 0 {
		fields = append(fields, httperr.FieldError{Field: "amount", Message: "Field is required"})
	}
	if in.UserID == "" {
		fields = append(fields, httperr.FieldError{Field: "user_id", Message: "Field is required"})
	}
	if len(fields) > 0 {
		return nil, httperr.NewValidationError(fields...)
	}

	req := payment.IntentRequest{
		ProductID: in.ProductID,
		Title:     plan.PackageName,
		Amount:    plan.Price,
		Coins:     plan.Credits,
		UserID:    in.UserID,
		Email:     in.Email,
	}

	intent, err := uc.provider.CreateIntent(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   audit.ActionPaymentIntentCreated,
		Entity:   "payment_intent",
		EntityID: intent.ID,
		Metadata: map[string]any{
			"productId": req.ProductID,
			"amount":    req.Amount,
			"coins":     req.Coins,
		},
	})

	return intent, nil
}
