package domain

import "time"

// VolumePoint is one point of the training-volume chart.
// Date is a display label ("Jan 5"); Timestamp carries the sortable workout date.
type VolumePoint struct {
	Date      string    `json:"date"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}
