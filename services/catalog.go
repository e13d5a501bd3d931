package services

import (
	"slices"

	"laptop-price-api/models"
)

var (
	screenSizeOptions = []models.LabeledOption{
		{Label: "11.6 inch", Value: 11.6},
		{Label: "12.0 inch", Value: 12.0},
		{Label: "12.5 inch", Value: 12.5},
		{Label: "13.3 inch", Value: 13.3},
		{Label: "13.5 inch", Value: 13.5},
		{Label: "14.0 inch", Value: 14.0},
		{Label: "15.0 inch", Value: 15.0},
		{Label: "15.4 inch", Value: 15.4},
		{Label: "15.6 inch", Value: 15.6},
		{Label: "16.0 inch", Value: 16.0},
		{Label: "17.0 inch", Value: 17.0},
		{Label: "17.3 inch", Value: 17.3},
		{Label: "18.4 inch", Value: 18.4},
	}

	weightOptions = []models.LabeledOption{
		{Label: "0.9 kg (Ultra-light)", Value: 0.9},
		{Label: "1.0 kg", Value: 1.0},
		{Label: "1.2 kg", Value: 1.2},
		{Label: "1.3 kg", Value: 1.3},
		{Label: "1.4 kg", Value: 1.4},
		{Label: "1.5 kg", Value: 1.5},
		{Label: "1.6 kg", Value: 1.6},
		{Label: "1.8 kg", Value: 1.8},
		{Label: "2.0 kg", Value: 2.0},
		{Label: "2.2 kg", Value: 2.2},
		{Label: "2.4 kg", Value: 2.4},
		{Label: "2.5 kg", Value: 2.5},
		{Label: "2.7 kg", Value: 2.7},
		{Label: "3.0 kg", Value: 3.0},
		{Label: "3.5 kg (Heavy)", Value: 3.5},
		{Label: "4.0 kg (Desktop Replacement)", Value: 4.0},
	}

	ramOptions        = []int{2, 4, 6, 8, 12, 16, 24, 32, 64}
	hddOptions        = []int{0, 128, 256, 512, 1024, 2048}
	ssdOptions        = []int{0, 8, 128, 256, 512, 1024}
	resolutionOptions = []string{
		"1920x1080", "1366x768", "1600x900", "3840x2160",
		"3200x1800", "2880x1800", "2560x1600", "2560x1440", "2304x1440",
	}
)

// OptionCatalog serves the dropdown options. The dynamic lists are read from
// the reference table once, at construction.
type OptionCatalog struct {
	companies   []string
	laptopTypes []string
	cpus        []string
	gpus        []string
	oses        []string
}

func NewOptionCatalog(ref ValueSource) (*OptionCatalog, error) {
	c := &OptionCatalog{}
	for _, col := range []struct {
		name string
		dst  *[]string
	}{
		{"Company", &c.companies},
		{"TypeName", &c.laptopTypes},
		{"Cpu brand", &c.cpus},
		{"Gpu brand", &c.gpus},
		{"os", &c.oses},
	} {
		vals, err := ref.DistinctValues(col.name)
		if err != nil {
			return nil, &StartupError{Component: "option catalog", Err: err}
		}
		*col.dst = vals
	}
	return c, nil
}

// ListOptions returns a fresh copy on every call.
func (c *OptionCatalog) ListOptions() models.OptionSet {
	return models.OptionSet{
		Companies:   slices.Clone(c.companies),
		LaptopTypes: slices.Clone(c.laptopTypes),
		Ram:         slices.Clone(ramOptions),
		ScreenSizes: slices.Clone(screenSizeOptions),
		Weights:     slices.Clone(weightOptions),
		Resolutions: slices.Clone(resolutionOptions),
		Cpus:        slices.Clone(c.cpus),
		HDD:         slices.Clone(hddOptions),
		SSD:         slices.Clone(ssdOptions),
		Gpus:        slices.Clone(c.gpus),
		OSOptions:   slices.Clone(c.oses),
	}
}
