package payment

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/estate-listings/internal/config"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
)

const providerName = "mercadopago"

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*mppayment.Response, error)
}

type MercadoPago struct {
	preferences preferenceCreator
	payments    paymentGetter

	currency        string
	notificationURL string
	webhookSecret   string
}

func NewMercadoPago(cfg config.PaymentConfig) (*MercadoPago, error) {
	mpCfg, err := mpconfig.New(cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return newMercadoPago(
		preference.NewClient(mpCfg),
		mppayment.NewClient(mpCfg),
		cfg,
	), nil
}

func newMercadoPago(pref preferenceCreator, pay paymentGetter, cfg config.PaymentConfig) *MercadoPago {
	return &MercadoPago{
		preferences:     pref,
		payments:        pay,
		currency:        cfg.Currency,
		notificationURL: cfg.NotificationURL,
		webhookSecret:   cfg.WebhookSecret,
	}
}

// ToMinorUnits rounds a decimal amount to whole cents.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// --------------------------------------------------
// Intent
// --------------------------------------------------

func (m *MercadoPago) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	cents := ToMinorUnits(req.Amount)
	if cents <= 0 {
		return nil, httperr.NewValidationError(httperr.FieldError{
			Field:   "amount",
			Message: "Must be greater than 0",
		})
	}

	title := req.Title
	if title == "" {
		title = req.ProductID
	}

	request := preference.Request{
		Items: []preference.ItemRequest{{
			ID:         req.ProductID,
			Title:      title,
			Quantity:   1,
			UnitPrice:  float64(cents) / 100,
			CurrencyID: m.currency,
		}},
		Metadata: map[string]any{
			MetaProductID: req.ProductID,
			MetaCoins:     req.Coins,
			MetaUserID:    req.UserID,
		},
		ExternalReference: req.UserID,
		NotificationURL:   m.notificationURL,
	}
	if req.Email != "" {
		request.Payer = &preference.PayerRequest{Email: req.Email}
	}

	resp, err := m.preferences.Create(ctx, request)
	if err != nil {
		return nil, httperr.External(providerName, err)
	}

	return &Intent{ID: resp.ID, ClientSecret: resp.ID}, nil
}

// --------------------------------------------------
// Webhook
// --------------------------------------------------

func (m *MercadoPago) ParseEvent(ctx context.Context, n Notification) (*Event, error) {
	if err := VerifySignature(m.webhookSecret, n); err != nil {
		return nil, err
	}

	switch n.Topic {
	case "payment":
		return m.paymentEvent(ctx, n.DataID)
	case "merchant_order", "topic_merchant_order_wh":
		return &Event{
			ID:   "merchant_order:" + n.DataID,
			Type: EventCheckoutCompleted,
		}, nil
	default:
		return &Event{ID: n.Topic + ":" + n.DataID, Type: n.Topic}, nil
	}
}

func (m *MercadoPago) paymentEvent(ctx context.Context, dataID string) (*Event, error) {
	id, err := strconv.Atoi(dataID)
	if err != nil {
		return nil, fmt.Errorf("%w: payment id %q", ErrInvalidNotification, dataID)
	}

	p, err := m.payments.Get(ctx, id)
	if err != nil {
		return nil, httperr.External(providerName, err)
	}

	ev := &Event{
		ID:       "payment:" + strconv.Itoa(p.ID),
		Metadata: normaliseMetadata(p.Metadata),
	}

	switch p.Status {
	case "approved":
		ev.Type = EventPaymentSucceeded
	case "rejected", "cancelled":
		ev.Type = EventPaymentFailed
	default:
		ev.Type = "payment." + p.Status
	}
	return ev, nil
}

// normaliseMetadata flattens provider metadata to strings. The provider
// snake-cases metadata keys, so they are mapped back to the keys we sent.
func normaliseMetadata(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := k
		if strings.EqualFold(k, "product_id") {
			key = MetaProductID
		}

		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[key] = val
		case float64:
			out[key] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
	return out
}

var _ Provider = (*MercadoPago)(nil)
