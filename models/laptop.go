package models

// LaptopConfiguration is one user-submitted configuration. It lives for a
// single request.
type LaptopConfiguration struct {
	Company     string  `json:"company"`
	LaptopType  string  `json:"laptop_type"`
	Ram         int     `json:"ram"`
	Weight      float64 `json:"weight"`
	Touchscreen string  `json:"touchscreen"`
	Ips         string  `json:"ips"`
	ScreenSize  float64 `json:"screen_size"`
	Resolution  string  `json:"resolution"`
	Cpu         string  `json:"cpu"`
	HDD         int     `json:"hdd"`
	SSD         int     `json:"ssd"`
	Gpu         string  `json:"gpu"`
	OS          string  `json:"os"`
}

// PredictRequest is the POST /api/predict body. Pointers let zero values
// such as hdd=0 pass the required check.
type PredictRequest struct {
	Company     *string  `json:"company" binding:"required"`
	LaptopType  *string  `json:"laptop_type" binding:"required"`
	Ram         *int     `json:"ram" binding:"required"`
	Weight      *float64 `json:"weight" binding:"required"`
	Touchscreen *string  `json:"touchscreen" binding:"required"`
	Ips         *string  `json:"ips" binding:"required"`
	ScreenSize  *float64 `json:"screen_size" binding:"required"`
	Resolution  *string  `json:"resolution" binding:"required"`
	Cpu         *string  `json:"cpu" binding:"required"`
	HDD         *int     `json:"hdd" binding:"required"`
	SSD         *int     `json:"ssd" binding:"required"`
	Gpu         *string  `json:"gpu" binding:"required"`
	OS          *string  `json:"os" binding:"required"`
}

// Configuration must only be called after binding succeeded.
func (r PredictRequest) Configuration() LaptopConfiguration {
	return LaptopConfiguration{
		Company:     *r.Company,
		LaptopType:  *r.LaptopType,
		Ram:         *r.Ram,
		Weight:      *r.Weight,
		Touchscreen: *r.Touchscreen,
		Ips:         *r.Ips,
		ScreenSize:  *r.ScreenSize,
		Resolution:  *r.Resolution,
		Cpu:         *r.Cpu,
		HDD:         *r.HDD,
		SSD:         *r.SSD,
		Gpu:         *r.Gpu,
		OS:          *r.OS,
	}
}
