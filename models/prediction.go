package models

import "time"

// ConfigurationEcho is the human-readable configuration returned with a
// prediction.
type ConfigurationEcho struct {
	Brand       string `json:"brand"`
	Type        string `json:"type"`
	Ram         string `json:"ram"`
	Weight      string `json:"weight"`
	ScreenSize  string `json:"screen_size"`
	Resolution  string `json:"resolution"`
	Touchscreen string `json:"touchscreen"`
	Ips         string `json:"ips"`
	Cpu         string `json:"cpu"`
	HDD         string `json:"hdd"`
	SSD         string `json:"ssd"`
	Gpu         string `json:"gpu"`
	OS          string `json:"os"`
}

type PredictResponse struct {
	Success        bool              `json:"success"`
	PredictedPrice int64             `json:"predicted_price"`
	FormattedPrice string            `json:"formatted_price"`
	Configuration  ConfigurationEcho `json:"configuration"`
}

// PredictionEvent is published on the live feed after each successful
// prediction.
type PredictionEvent struct {
	TS             time.Time         `json:"ts"`
	RequestID      string            `json:"request_id"`
	ModelVersion   string            `json:"model_version"`
	PredictedPrice int64             `json:"predicted_price"`
	FormattedPrice string            `json:"formatted_price"`
	Configuration  ConfigurationEcho `json:"configuration"`
}
