package service

import (
	"context"

	"github.com/AintAsh/Churn-Prediction/internal/domain/entity"
)

// ScoreResult represents the outcome of scoring one customer record.
// Probability is nil when the underlying model does not expose a
// probability estimate.
type ScoreResult struct {
	Class       int      `json:"class"`
	Probability *float64 `json:"probability"`
}

// Scorer defines the interface to the trained churn model. The model
// itself is an external artifact; implementations only bind to it.
type Scorer interface {
	// Score scores a single customer record
	Score(ctx context.Context, record *entity.CustomerRecord, requestID string) (*ScoreResult, error)
}
