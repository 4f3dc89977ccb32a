package events

import "github.com/api-sage/fd-account-processor/src/internal/logger"

type Kind string

const (
	KindAccountOpened       Kind = "fd.account.opened"
	KindInterestAccrued     Kind = "fd.interest.accrued"
	KindInterestCapitalized Kind = "fd.interest.capitalized"
	KindMaturityProcessed   Kind = "fd.maturity.processed"
	KindAccountClosed       Kind = "fd.account.closed"
)

// Publisher is the fire-and-forget notification boundary. A failed
// publish must never fail the batch step that triggered it, so the
// interface has no error return; implementations log and move on.
type Publisher interface {
	Publish(kind Kind, payload any)
}

// LogPublisher writes events to the structured log. It stands in for
// the real broker, which lives outside this engine.
type LogPublisher struct{}

func NewLogPublisher() LogPublisher {
	return LogPublisher{}
}

func (LogPublisher) Publish(kind Kind, payload any) {
	logger.Info("event published", logger.Fields{
		"kind":    string(kind),
		"payload": logger.SanitizePayload(payload),
	})
}
