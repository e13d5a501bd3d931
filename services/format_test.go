package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price int64
		want  string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{42762, "₹42,762"},
		{1234567, "₹1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price))
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2, "2.0"},
		{1.5, "1.5"},
		{15.6, "15.6"},
		{0.1, "0.1"},
		{13.299999, "13.299999"},
		{1e16, "1e+16"},
		{0.00001, "1e-05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in), "input %v", tt.in)
	}
}

func TestEchoStorageLabels(t *testing.T) {
	cfg := dellNotebook()
	cfg.HDD = 500
	cfg.SSD = 0
	cfg.Weight = 2

	echo := EchoConfiguration(cfg)
	assert.Equal(t, "500 GB", echo.HDD)
	assert.Equal(t, "None", echo.SSD)
	assert.Equal(t, "2.0 kg", echo.Weight)
	assert.Equal(t, "8 GB", echo.Ram)
}
