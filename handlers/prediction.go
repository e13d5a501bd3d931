package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"laptop-price-api/logger"
	"laptop-price-api/metrics"
	"laptop-price-api/middleware"
	"laptop-price-api/models"
	"laptop-price-api/services"

	"github.com/gin-gonic/gin"
)

const publishTimeout = 2 * time.Second

type Predictor interface {
	Predict(ctx context.Context, cfg models.LaptopConfiguration) (*services.PredictionResult, error)
}

type EventPublisher interface {
	Available() bool
	Publish(ctx context.Context, event models.PredictionEvent) error
}

type PredictionHandler struct {
	predictor Predictor
	publisher EventPublisher
	log       *logger.Logger
}

func NewPredictionHandler(predictor Predictor, publisher EventPublisher, log *logger.Logger) *PredictionHandler {
	return &PredictionHandler{predictor: predictor, publisher: publisher, log: log}
}

func (h *PredictionHandler) Predict(c *gin.Context) {
	start := time.Now()

	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ObservePrediction(metrics.OutcomeInvalidRequest, time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	res, err := h.predictor.Predict(c.Request.Context(), req.Configuration())
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			metrics.ObservePrediction(metrics.OutcomeValidationError, time.Since(start))
			c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Reason})
			return
		}

		var perr *services.PredictionError
		if !errors.As(err, &perr) {
			perr = &services.PredictionError{Err: err}
		}
		metrics.ObservePrediction(metrics.OutcomePredictionError, time.Since(start))
		h.log.Error("prediction failed", "request_id", middleware.RequestID(c), "error", perr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": perr.Error()})
		return
	}

	metrics.ObservePrediction(metrics.OutcomeSuccess, time.Since(start))
	metrics.ObservePrice(res.PredictedPrice)
	h.log.Debug("prediction served",
		"request_id", middleware.RequestID(c),
		"ppi", res.PPI,
		"log_price", res.LogPrice,
		"price", res.PredictedPrice,
	)

	if h.publisher.Available() {
		event := models.PredictionEvent{
			TS:             time.Now().UTC(),
			RequestID:      middleware.RequestID(c),
			ModelVersion:   res.ModelVersion,
			PredictedPrice: res.PredictedPrice,
			FormattedPrice: res.FormattedPrice,
			Configuration:  res.Configuration,
		}
		go h.publish(event)
	}

	c.JSON(http.StatusOK, models.PredictResponse{
		Success:        true,
		PredictedPrice: res.PredictedPrice,
		FormattedPrice: res.FormattedPrice,
		Configuration:  res.Configuration,
	})
}

func (h *PredictionHandler) publish(event models.PredictionEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err := h.publisher.Publish(ctx, event)
	metrics.EventPublished(err)
	if err != nil {
		h.log.Warn("publish prediction event failed", "request_id", event.RequestID, "error", err)
	}
}
