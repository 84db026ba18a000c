package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReferenceDay(t *testing.T) {
	tests := []struct {
		name   string
		at     time.Time
		offset int
		want   time.Time
	}{
		{
			name:   "just before midnight in UTC+9",
			at:     time.Date(2024, 1, 1, 14, 59, 59, 0, time.UTC),
			offset: 9,
			want:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "midnight in UTC+9",
			at:     time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC),
			offset: 9,
			want:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "plain UTC",
			at:     time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC),
			offset: 0,
			want:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "negative offset",
			at:     time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC),
			offset: -5,
			want:   time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "input in another zone",
			at:     time.Date(2024, 1, 1, 23, 0, 0, 0, time.FixedZone("UTC+9", 9*3600)),
			offset: 9,
			want:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ReferenceDay(tt.at, tt.offset)))
		})
	}
}

func TestNextReferenceMidnight(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	next := NextReferenceMidnight(at, 9)

	assert.True(t, time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC).Equal(next))
	assert.True(t, ReferenceDay(next, 9).After(ReferenceDay(at, 9)))
}
