package hours

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday; the whole suite anchors on that week.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

// at returns the given day at a fractional-hour clock reading.
func at(day time.Time, hours float64) time.Time {
	h := int(hours)
	rem := (hours - float64(h)) * 60
	m := int(rem)
	s := int(math.Round((rem - float64(m)) * 60))
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, day.Location())
}

func TestStatusAtEmptySchedule(t *testing.T) {
	for _, schedule := range []Schedule{nil, {}} {
		got := StatusAt(schedule, at(monday, 10))
		assert.False(t, got.IsOpen)
		assert.Equal(t, "Call to confirm hours", got.Text)
		assert.Equal(t, ColorGray, got.Color)
	}
}

func TestStatusAtClosedEverywhereIsGray(t *testing.T) {
	schedule := Schedule{
		"monday": "closed", "tuesday": "closed", "wednesday": "closed",
		"thursday": "closed", "friday": "closed", "saturday": "closed",
		"sunday": "closed",
	}
	got := StatusAt(schedule, at(monday, 10))
	assert.False(t, got.IsOpen)
	assert.Equal(t, ColorGray, got.Color)
	assert.Equal(t, "Call to confirm hours", got.Text)
}

func TestStatusAtClosedTodayWithReopeningIsRed(t *testing.T) {
	schedule := Schedule{"monday": "closed", "tuesday": "9-17"}
	got := StatusAt(schedule, at(monday, 10))
	assert.False(t, got.IsOpen)
	assert.Equal(t, "Opens tomorrow 9:00am", got.Text)
	assert.Equal(t, ColorRed, got.Color)
}

func TestStatusAtOpen24Hours(t *testing.T) {
	schedule := Schedule{"monday": "open 24 hours"}
	for h := 0.0; h < 24; h += 0.25 {
		got := StatusAt(schedule, at(monday, h))
		require.True(t, got.IsOpen, "expected open at %v", h)
		require.Equal(t, "Open 24 Hours", got.Text)
		require.Equal(t, ColorGreen, got.Color)
	}
	assert.True(t, IsOpenAt(schedule, at(monday, 3.99)))
}

func TestStatusAtIntervalBoundariesInclusive(t *testing.T) {
	schedule := Schedule{"monday": "9:00-17:00"}

	assert.True(t, IsOpenAt(schedule, at(monday, 9.0)))
	assert.True(t, IsOpenAt(schedule, at(monday, 17.0)))
	assert.False(t, IsOpenAt(schedule, at(monday, 8.99)))
	assert.False(t, IsOpenAt(schedule, at(monday, 17.01)))
}

func TestStatusAtClosingSoonBoundary(t *testing.T) {
	schedule := Schedule{"monday": "9:00-17:00"}

	got := StatusAt(schedule, at(monday, 16.5))
	assert.True(t, got.IsOpen)
	assert.Equal(t, "Closes soon (5:00pm)", got.Text)
	assert.Equal(t, ColorYellow, got.Color)

	got = StatusAt(schedule, at(monday, 16.49))
	assert.True(t, got.IsOpen)
	assert.Equal(t, "Open until 5:00pm", got.Text)
	assert.Equal(t, ColorGreen, got.Color)
}

func TestStatusAtMultiIntervalDay(t *testing.T) {
	schedule := Schedule{"monday": "8-9,12-13:30,16-17:30"}

	// Midday falls in the second window.
	got := StatusAt(schedule, at(monday, 12.5))
	assert.True(t, got.IsOpen)
	assert.Equal(t, "Open until 1:30pm", got.Text)
	assert.Equal(t, ColorGreen, got.Color)

	// Between windows: next opening is later today, under three hours away.
	got = StatusAt(schedule, at(monday, 10))
	assert.False(t, got.IsOpen)
	assert.Equal(t, "Opens 12:00pm", got.Text)
	assert.Equal(t, ColorYellow, got.Color)

	// Early morning: more than three hours before the midday window opens.
	got = StatusAt(schedule, at(monday, 1))
	assert.False(t, got.IsOpen)
	assert.Equal(t, "Opens 8:00am", got.Text)
	assert.Equal(t, ColorOrange, got.Color)
}

func TestStatusAtFirstMatchWinsOnOverlap(t *testing.T) {
	// Overlapping windows should not occur in clean data, but when they do
	// the first one in list order decides the closing time.
	schedule := Schedule{"monday": "9-12,10-18"}
	got := StatusAt(schedule, at(monday, 11))
	assert.True(t, got.IsOpen)
	assert.Equal(t, "Open until 12:00pm", got.Text)
}

func TestStatusAtByAppointmentToday(t *testing.T) {
	schedule := Schedule{"monday": "by appointment", "tuesday": "9-17"}
	for _, h := range []float64{0, 9, 12.5, 23.75} {
		got := StatusAt(schedule, at(monday, h))
		assert.False(t, got.IsOpen)
		assert.Equal(t, "Call to confirm hours", got.Text)
		assert.Equal(t, ColorGray, got.Color)
	}
}

func TestStatusAtUnparseableDayIsGray(t *testing.T) {
	// "25-30" parses to nothing, so the day carries no usable hours even
	// though the raw field is non-empty. No forward search happens.
	schedule := Schedule{"monday": "25-30", "tuesday": "9-17"}
	got := StatusAt(schedule, at(monday, 10))
	assert.False(t, got.IsOpen)
	assert.Equal(t, "Call to confirm hours", got.Text)
	assert.Equal(t, ColorGray, got.Color)
}

func TestStatusAtAfterHoursFallsToForwardSearch(t *testing.T) {
	schedule := Schedule{"monday": "9-17", "thursday": "10-14"}
	got := StatusAt(schedule, at(monday, 20))
	assert.False(t, got.IsOpen)
	assert.Equal(t, "Opens Thursday 10:00am", got.Text)
	assert.Equal(t, ColorRed, got.Color)
}

func TestFindNextOpenVariants(t *testing.T) {
	tests := []struct {
		name     string
		schedule Schedule
		wantText string
		wantOK   bool
	}{
		{
			"skips closed day",
			Schedule{"tuesday": "closed", "wednesday": "9-17"},
			"Opens Wednesday 9:00am", true,
		},
		{
			"tomorrow wording",
			Schedule{"tuesday": "9-17"},
			"Opens tomorrow 9:00am", true,
		},
		{
			"tomorrow 24 hours",
			Schedule{"tuesday": "open 24 hours"},
			"Opens tomorrow (24 Hours)", true,
		},
		{
			"later day 24 hours",
			Schedule{"friday": "open 24 hours"},
			"Opens Friday (24 Hours)", true,
		},
		{
			"by appointment stops the search",
			Schedule{"tuesday": "by appointment", "wednesday": "9-17"},
			"Call to confirm hours", true,
		},
		{
			"unparseable day skipped",
			Schedule{"tuesday": "25-30", "wednesday": "9-17"},
			"Opens Wednesday 9:00am", true,
		},
		{
			"first raw segment decides the opening",
			Schedule{"wednesday": "8:30-11,14-18"},
			"Opens Wednesday 8:30am", true,
		},
		{
			"wraps to the same weekday next week",
			Schedule{"monday": "9-17"},
			"Opens Monday 9:00am", true,
		},
		{
			"nothing within a week",
			Schedule{"monday": "closed"},
			"", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := findNextOpen(tt.schedule, at(monday, 10))
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestNextOpenAt(t *testing.T) {
	laterToday := Schedule{"monday": "14-18"}
	assert.Equal(t, "Opens 2:00pm today", NextOpenAt(laterToday, at(monday, 10)))

	tomorrow := Schedule{"monday": "9-12", "tuesday": "9-17"}
	assert.Equal(t, "Opens tomorrow 9:00am", NextOpenAt(tomorrow, at(monday, 13)))

	nothing := Schedule{"monday": "closed"}
	assert.Equal(t, "Call to confirm hours", NextOpenAt(nothing, at(monday, 13)))
}
