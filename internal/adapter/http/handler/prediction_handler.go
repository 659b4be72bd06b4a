package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AintAsh/Churn-Prediction/internal/domain/entity"
	"github.com/AintAsh/Churn-Prediction/internal/usecase"
)

// AuthenticatedPredictionRequest represents the body of POST /predict/auth
type AuthenticatedPredictionRequest struct {
	Customer *entity.CustomerRecord `json:"customer" binding:"required"`
}

// PredictionHandler handles churn prediction HTTP requests
type PredictionHandler struct {
	predictionUC usecase.PredictionUsecase
	logger       *zap.Logger
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictionUC usecase.PredictionUsecase, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{
		predictionUC: predictionUC,
		logger:       logger,
	}
}

// PredictChurn handles POST /predict_churn
func (h *PredictionHandler) PredictChurn(c *gin.Context) {
	var record entity.CustomerRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		respondValidationError(c, err)
		return
	}

	h.respond(c, &record)
}

// PredictAuthenticated handles POST /predict/auth. The bearer token
// has already been verified by the auth middleware at this point.
func (h *PredictionHandler) PredictAuthenticated(c *gin.Context) {
	var req AuthenticatedPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	h.logger.Info("authenticated prediction request",
		zap.String("username", c.GetString("username")),
		zap.String("request_id", c.GetString("request_id")),
	)

	h.respond(c, req.Customer)
}

func (h *PredictionHandler) respond(c *gin.Context, record *entity.CustomerRecord) {
	output, err := h.predictionUC.Predict(c.Request.Context(), record, c.GetString("request_id"))
	if err != nil {
		if errors.Is(err, usecase.ErrScoringFailed) {
			h.logger.Error("scoring failed", zap.Error(err))
			respondDetail(c, http.StatusInternalServerError, err.Error())
			return
		}
		respondDetail(c, http.StatusInternalServerError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, output)
}
