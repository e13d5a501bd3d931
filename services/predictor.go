package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"laptop-price-api/inference"
	"laptop-price-api/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FeatureColumns is the row layout the pipeline was fitted on.
var FeatureColumns = []string{
	"Company", "TypeName", "Ram", "Weight", "Touchscreen", "Ips",
	"ppi", "Cpu brand", "HDD", "SSD", "Gpu brand", "os",
}

const (
	reasonNonPositive = "Weight and Screen Size must be greater than 0"
	reasonResolution  = "Resolution must be <width>x<height> with positive integers"
	reasonStorage     = "HDD and SSD sizes must not be negative"
)

var tracer = otel.Tracer("laptop-price-api/services")

type PredictionResult struct {
	PredictedPrice int64
	FormattedPrice string
	Configuration  models.ConfigurationEcho
	PPI            float64
	LogPrice       float64
	Features       inference.Row
	ModelVersion   string
}

// PricePredictor turns a laptop configuration into a price. It holds no
// mutable state and is safe for concurrent use.
type PricePredictor struct {
	pipeline Pipeline
}

func NewPricePredictor(store *ArtifactStore) *PricePredictor {
	return &PricePredictor{pipeline: store.Pipeline}
}

func (p *PricePredictor) Predict(ctx context.Context, cfg models.LaptopConfiguration) (*PredictionResult, error) {
	_, span := tracer.Start(ctx, "PricePredictor.Predict")
	defer span.End()

	width, height, err := ValidateConfiguration(cfg)
	if err != nil {
		span.SetStatus(codes.Error, "invalid configuration")
		return nil, err
	}

	ppi := PixelDensity(width, height, cfg.ScreenSize)
	row := BuildFeatureRow(cfg, ppi)
	span.SetAttributes(
		attribute.String("laptop.company", cfg.Company),
		attribute.Float64("laptop.ppi", ppi),
	)

	logPrice, err := p.pipeline.PredictLogPrice(row)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "pipeline rejected row")
		return nil, &PredictionError{Err: err}
	}

	price, err := PriceFromLog(logPrice)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "price out of range")
		return nil, &PredictionError{Err: err}
	}
	span.SetAttributes(attribute.Int64("laptop.predicted_price", price))

	return &PredictionResult{
		PredictedPrice: price,
		FormattedPrice: FormatPrice(price),
		Configuration:  EchoConfiguration(cfg),
		PPI:            ppi,
		LogPrice:       logPrice,
		Features:       row,
		ModelVersion:   p.pipeline.Version(),
	}, nil
}

// ValidateConfiguration checks the preconditions and returns the parsed
// resolution.
func ValidateConfiguration(cfg models.LaptopConfiguration) (int, int, error) {
	if !(cfg.Weight > 0) || !(cfg.ScreenSize > 0) {
		return 0, 0, &ValidationError{Reason: reasonNonPositive}
	}
	width, height, err := ParseResolution(cfg.Resolution)
	if err != nil {
		return 0, 0, err
	}
	if cfg.HDD < 0 || cfg.SSD < 0 {
		return 0, 0, &ValidationError{Reason: reasonStorage}
	}
	return width, height, nil
}

// ParseResolution accepts exactly "<width>x<height>" with two positive
// base-10 integers. Spaces around either number are ignored.
func ParseResolution(s string) (int, int, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, &ValidationError{Reason: reasonResolution}
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return 0, 0, &ValidationError{Reason: reasonResolution}
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return 0, 0, &ValidationError{Reason: reasonResolution}
	}
	return width, height, nil
}

func PixelDensity(width, height int, screenSize float64) float64 {
	w, h := float64(width), float64(height)
	return math.Sqrt(w*w+h*h) / screenSize
}

// BinaryFlag is 1 only for the exact string "Yes".
func BinaryFlag(s string) float64 {
	if s == "Yes" {
		return 1
	}
	return 0
}

func BuildFeatureRow(cfg models.LaptopConfiguration, ppi float64) inference.Row {
	return inference.Row{
		inference.Categorical("Company", cfg.Company),
		inference.Categorical("TypeName", cfg.LaptopType),
		inference.Numeric("Ram", float64(cfg.Ram)),
		inference.Numeric("Weight", cfg.Weight),
		inference.Numeric("Touchscreen", BinaryFlag(cfg.Touchscreen)),
		inference.Numeric("Ips", BinaryFlag(cfg.Ips)),
		inference.Numeric("ppi", ppi),
		inference.Categorical("Cpu brand", cfg.Cpu),
		inference.Numeric("HDD", float64(cfg.HDD)),
		inference.Numeric("SSD", float64(cfg.SSD)),
		inference.Categorical("Gpu brand", cfg.Gpu),
		inference.Categorical("os", cfg.OS),
	}
}

var errPriceRange = errors.New("predicted price is not a finite int64")

// PriceFromLog inverts the log-price target and truncates to whole rupees.
func PriceFromLog(logPrice float64) (int64, error) {
	v := math.Floor(math.Exp(logPrice))
	if math.IsNaN(v) || math.IsInf(v, 0) || v >= math.MaxInt64 {
		return 0, errPriceRange
	}
	return int64(v), nil
}
