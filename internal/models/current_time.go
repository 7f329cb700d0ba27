package models

import "time"

// CurrentTimeModel Current time specific model
type CurrentTimeModel struct {
	ReadableTime string `json:"readableTime"`
	Time         int64  `json:"time"`
	Zone         string `json:"zone"`
}

// NewCurrentTime describes t for the current-time endpoint.
func NewCurrentTime(t time.Time) CurrentTimeModel {
	zone, _ := t.Zone()
	return CurrentTimeModel{
		ReadableTime: t.Format(time.RFC3339),
		Time:         t.UnixMilli(),
		Zone:         zone,
	}
}
