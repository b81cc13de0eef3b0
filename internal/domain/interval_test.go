package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{"identical", Interval{at(9, 0), at(10, 0)}, Interval{at(9, 0), at(10, 0)}, true},
		{"partial overlap", Interval{at(9, 0), at(10, 0)}, Interval{at(9, 30), at(10, 30)}, true},
		{"contained", Interval{at(9, 0), at(12, 0)}, Interval{at(10, 0), at(11, 0)}, true},
		{"touching end to start", Interval{at(9, 0), at(10, 0)}, Interval{at(10, 0), at(11, 0)}, false},
		{"touching start to end", Interval{at(10, 0), at(11, 0)}, Interval{at(9, 0), at(10, 0)}, false},
		{"disjoint", Interval{at(9, 0), at(10, 0)}, Interval{at(13, 0), at(14, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.expected, tt.b.Overlaps(tt.a), "overlap must be symmetric")
			assert.Equal(t, tt.expected, Overlaps(tt.a.Start, tt.a.End, tt.b.Start, tt.b.End))
		})
	}
}

func TestNewInterval_NormalizesToUTCMinute(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2026, 3, 2, 12, 0, 42, 500, loc)
	end := time.Date(2026, 3, 2, 13, 15, 59, 0, loc)

	interval := NewInterval(start, end)

	assert.Equal(t, at(9, 0), interval.Start)
	assert.Equal(t, at(10, 15), interval.End)
	assert.Equal(t, time.UTC, interval.Start.Location())
	assert.True(t, interval.IsValid())
	assert.Equal(t, 75*time.Minute, interval.Duration())
}

func TestInterval_IsValid(t *testing.T) {
	assert.False(t, Interval{at(10, 0), at(10, 0)}.IsValid())
	assert.False(t, Interval{at(11, 0), at(10, 0)}.IsValid())
	assert.True(t, Interval{}.IsZero())
	assert.False(t, Interval{at(9, 0), at(10, 0)}.IsZero())
}
