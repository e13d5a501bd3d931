package models

type LabeledOption struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type OptionSet struct {
	Companies   []string        `json:"companies"`
	LaptopTypes []string        `json:"laptop_types"`
	Ram         []int           `json:"ram"`
	ScreenSizes []LabeledOption `json:"screen_sizes"`
	Weights     []LabeledOption `json:"weights"`
	Resolutions []string        `json:"resolutions"`
	Cpus        []string        `json:"cpus"`
	HDD         []int           `json:"hdd"`
	SSD         []int           `json:"ssd"`
	Gpus        []string        `json:"gpus"`
	OSOptions   []string        `json:"os_options"`
}
