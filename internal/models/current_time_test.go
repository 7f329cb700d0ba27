package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCurrentTime(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		zone string
	}{
		{"UTC", time.Date(2025, 5, 3, 12, 0, 0, 0, time.UTC), "UTC"},
		{"Sao Paulo", time.Date(2025, 5, 3, 9, 0, 0, 0, time.FixedZone("-03", -3*60*60)), "-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCurrentTime(tt.at)

			assert.Equal(t, int64(1746273600000), got.Time)
			assert.Equal(t, tt.at.Format(time.RFC3339), got.ReadableTime)
			assert.Equal(t, tt.zone, got.Zone)
		})
	}
}
