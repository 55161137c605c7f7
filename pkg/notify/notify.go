// Package notify delivers transfer events to the operator review queue.
package notify

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/internal/metrics"
	"github.com/chainsafe/usdt-payout-verifier/pkg/transfer"
)

// Kind is the type of a transfer event
type Kind string

const (
	// KindPaymentVerified: the user's payment is confirmed on chain and needs review
	KindPaymentVerified Kind = "payment_verified"
	KindCompleted       Kind = "transfer_completed"
	KindRejected        Kind = "transfer_rejected"
	KindCancelled       Kind = "transfer_cancelled"
)

// Event is a transfer state change operators are told about
type Event struct {
	Kind       Kind               `json:"kind"`
	Transfer   *transfer.Transfer `json:"transfer"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// NewEvent creates an Event stamped with the current time
func NewEvent(kind Kind, t *transfer.Transfer) Event {
	return Event{
		Kind:       kind,
		Transfer:   t,
		OccurredAt: time.Now().UTC(),
	}
}

// Notifier delivers events
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogNotifier writes events to the log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs event at info level
func (n *LogNotifier) Notify(_ context.Context, event Event) error {
	fields := []zap.Field{zap.String("kind", string(event.Kind))}
	if t := event.Transfer; t != nil {
		fields = append(fields,
			zap.String("transfer_id", t.ID.String()),
			zap.String("user_id", t.UserID),
			zap.String("network", t.Network.String()),
			zap.String("status", string(t.Status)),
			zap.String("tx_hash", t.TxHash),
			zap.String("verified_amount", t.VerifiedAmount.String()),
			zap.String("net_amount", t.NetAmount.String()),
		)
	}
	n.logger.Info("transfer event", fields...)
	metrics.NotificationsTotal.WithLabelValues("log", "sent").Inc()
	return nil
}

// Multi fans an event out to every notifier. All notifiers are tried; their
// errors are joined.
type Multi []Notifier

// Notify delivers event to each notifier in order
func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
