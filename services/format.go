package services

import (
	"math"
	"strconv"
	"strings"

	"laptop-price-api/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders "₹" followed by the price with comma thousands
// separators.
func FormatPrice(price int64) string {
	return pricePrinter.Sprintf("₹%d", price)
}

func EchoConfiguration(cfg models.LaptopConfiguration) models.ConfigurationEcho {
	return models.ConfigurationEcho{
		Brand:       cfg.Company,
		Type:        cfg.LaptopType,
		Ram:         strconv.Itoa(cfg.Ram) + " GB",
		Weight:      formatFloat(cfg.Weight) + " kg",
		ScreenSize:  formatFloat(cfg.ScreenSize) + " inch",
		Resolution:  cfg.Resolution,
		Touchscreen: cfg.Touchscreen,
		Ips:         cfg.Ips,
		Cpu:         cfg.Cpu,
		HDD:         storageLabel(cfg.HDD),
		SSD:         storageLabel(cfg.SSD),
		Gpu:         cfg.Gpu,
		OS:          cfg.OS,
	}
}

func storageLabel(gb int) string {
	if gb > 0 {
		return strconv.Itoa(gb) + " GB"
	}
	return "None"
}

// formatFloat prints the shortest round-trip form and always keeps a
// fractional part, so 2 becomes "2.0" and 15.6 stays "15.6".
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
