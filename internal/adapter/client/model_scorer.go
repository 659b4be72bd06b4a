package client

import (
	"context"
	"fmt"

	"github.com/AintAsh/Churn-Prediction/internal/domain/entity"
	"github.com/AintAsh/Churn-Prediction/internal/domain/service"
)

// ModelScorer adapts ModelClient to the Scorer interface
type ModelScorer struct {
	client *ModelClient
}

// NewModelScorer creates a new ModelScorer
func NewModelScorer(client *ModelClient) service.Scorer {
	return &ModelScorer{client: client}
}

// Score scores a single customer record
func (s *ModelScorer) Score(ctx context.Context, record *entity.CustomerRecord, requestID string) (*service.ScoreResult, error) {
	resp, err := s.client.Predict(ctx, record, requestID)
	if err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, fmt.Errorf("model service reported failure for request %s", requestID)
	}

	return &service.ScoreResult{
		Class:       resp.Prediction,
		Probability: resp.Probability,
	}, nil
}
