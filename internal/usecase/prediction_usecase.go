package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AintAsh/Churn-Prediction/internal/domain/entity"
	"github.com/AintAsh/Churn-Prediction/internal/domain/service"
	"github.com/AintAsh/Churn-Prediction/internal/infrastructure/metrics"
)

// ErrScoringFailed wraps any failure from the scoring capability
var ErrScoringFailed = errors.New("scoring failed")

const cacheTTL = 5 * time.Minute

// PredictionOutput represents a served churn prediction
type PredictionOutput struct {
	Label         string   `json:"label"`
	Probability   *float64 `json:"probability"`
	RawPrediction int      `json:"raw_prediction"`
}

// PredictionUsecase defines the interface for churn prediction logic
type PredictionUsecase interface {
	Predict(ctx context.Context, record *entity.CustomerRecord, requestID string) (*PredictionOutput, error)
}

type predictionUsecase struct {
	scorer service.Scorer
	cache  *redis.Client
}

// NewPredictionUsecase creates a new prediction usecase. The cache
// client may be nil, in which case every request hits the model.
func NewPredictionUsecase(scorer service.Scorer, cache *redis.Client) PredictionUsecase {
	return &predictionUsecase{
		scorer: scorer,
		cache:  cache,
	}
}

func (u *predictionUsecase) Predict(ctx context.Context, record *entity.CustomerRecord, requestID string) (*PredictionOutput, error) {
	key := cacheKey(record)
	if u.cache != nil {
		if cached, err := u.cache.Get(ctx, key).Bytes(); err == nil {
			var output PredictionOutput
			if err := json.Unmarshal(cached, &output); err == nil {
				return &output, nil
			}
		}
	}

	result, err := u.scorer.Score(ctx, record, requestID)
	if err != nil {
		metrics.ScoringFailuresTotal.Inc()
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}

	output := &PredictionOutput{
		Label:         entity.LabelForClass(result.Class),
		Probability:   result.Probability,
		RawPrediction: result.Class,
	}
	metrics.PredictionsTotal.WithLabelValues(output.Label).Inc()

	if u.cache != nil {
		if data, err := json.Marshal(output); err == nil {
			u.cache.Set(ctx, key, data, cacheTTL)
		}
	}

	return output, nil
}

// cacheKey derives a deterministic key from the validated record.
// Marshaling a plain struct of strings and numbers cannot fail.
func cacheKey(record *entity.CustomerRecord) string {
	data, _ := json.Marshal(record)
	sum := sha256.Sum256(data)
	return "churn:prediction:" + hex.EncodeToString(sum[:])
}
