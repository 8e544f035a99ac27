package domain_test

import (
	"testing"
	"time"

	"github.com/agencydesk/agency_desk_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountWorkingDays(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		holidays []time.Time
		want     int
	}{
		{
			// Mon 2026-03-02 through Fri 2026-03-06
			name:  "full working week",
			start: date(2026, time.March, 2),
			end:   date(2026, time.March, 6),
			want:  5,
		},
		{
			// Sat and Sun only
			name:  "weekend counts nothing",
			start: date(2026, time.March, 7),
			end:   date(2026, time.March, 8),
			want:  0,
		},
		{
			name:  "single working day",
			start: date(2026, time.March, 4),
			end:   date(2026, time.March, 4),
			want:  1,
		},
		{
			name:     "holiday inside the range is skipped",
			start:    date(2026, time.March, 2),
			end:      date(2026, time.March, 6),
			holidays: []time.Time{date(2026, time.March, 4)},
			want:     4,
		},
		{
			// Holiday on Saturday must not double-subtract.
			name:     "holiday on a weekend is already excluded",
			start:    date(2026, time.March, 2),
			end:      date(2026, time.March, 8),
			holidays: []time.Time{date(2026, time.March, 7)},
			want:     5,
		},
		{
			name:     "holiday outside the range is ignored",
			start:    date(2026, time.March, 2),
			end:      date(2026, time.March, 6),
			holidays: []time.Time{date(2026, time.March, 16)},
			want:     5,
		},
		{
			// Wed 2026-03-04 .. Tue 2026-03-10 spans one weekend
			name:  "range across a weekend",
			start: date(2026, time.March, 4),
			end:   date(2026, time.March, 10),
			want:  5,
		},
		{
			name:  "end before start yields zero",
			start: date(2026, time.March, 6),
			end:   date(2026, time.March, 2),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CountWorkingDays(tt.start, tt.end, tt.holidays))
		})
	}
}
