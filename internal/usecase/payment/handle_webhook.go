package payment

import (
	"context"
	"errors"
	"strconv"

	creditdomain "github.com/BruksfildServices01/estate-listings/internal/domain/credit"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/metrics"
	"github.com/BruksfildServices01/estate-listings/internal/payment"
	"github.com/BruksfildServices01/estate-listings/internal/usecase/credit"
)

type HandleWebhook struct {
	provider payment.Provider
	refill   *credit.Refill
	metrics  *metrics.Metrics
}

func NewHandleWebhook(
	provider payment.Provider,
	refill *credit.Refill,
	m *metrics.Metrics,
) *HandleWebhook {
	return &HandleWebhook{
		provider: provider,
		refill:   refill,
		metrics:  m,
	}
}

// Execute authenticates and applies one provider notification.
// Authentication errors wrap payment.ErrInvalidSignature or
// payment.ErrInvalidNotification; anything else returned is internal and
// makes the provider redeliver.
func (uc *HandleWebhook) Execute(ctx context.Context, n payment.Notification) error {
	log := logger.FromContext(ctx)

	ev, err := uc.provider.ParseEvent(ctx, n)
	if err != nil {
		return err
	}

	uc.metrics.WebhookEvents.WithLabelValues(ev.Type).Inc()
	log = &logger.Logger{Logger: log.With().Str("event_id", ev.ID).Str("event_type", ev.Type).Logger()}

	switch ev.Type {
	case payment.EventPaymentSucceeded:
		return uc.applyRefill(ctx, log, ev)

	case payment.EventCheckoutCompleted:
		log.Info().Msg("checkout completed")

	case payment.EventPaymentFailed:
		log.Warn().Msg("payment failed")

	default:
		log.Info().Msg("unhandled event type")
	}
	return nil
}

func (uc *HandleWebhook) applyRefill(ctx context.Context, log *logger.Logger, ev *payment.Event) error {
	coins, err := strconv.Atoi(ev.Metadata[payment.MetaCoins])
	userID := ev.Metadata[payment.MetaUserID]
	if err != nil || coins <= 0 || userID == "" {
		// Redelivery cannot fix bad metadata, so acknowledge it.
		log.Error().
			Str("coin", ev.Metadata[payment.MetaCoins]).
			Str("user_id", userID).
			Msg("payment metadata incomplete, credits not applied")
		return nil
	}

	_, err = uc.refill.Execute(ctx, credit.RefillInput{
		EventID:   ev.ID,
		UserID:    userID,
		ProductID: ev.Metadata[payment.MetaProductID],
		Amount:    coins,
	})
	switch {
	case errors.Is(err, creditdomain.ErrAlreadyProcessed):
		log.Info().Msg("payment already applied")
		return nil
	case errors.Is(err, creditdomain.ErrUserNotFound):
		log.Error().Str("user_id", userID).Msg("payment for unknown user")
		return nil
	case err != nil:
		log.Error().Err(err).Msg(credit.MessageRefillFailed)
		return err
	}

	log.Info().Str("user_id", userID).Int("coins", coins).Msg(credit.MessageRefilled)
	return nil
}
