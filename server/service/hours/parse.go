package hours

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseTime converts one free-text time token to fractional hours in [0, 24).
// Accepted forms: "9", "17", "9:30", "09:30", "9am", "5:30pm", "12:00 pm".
// Without a meridian the hour is read as a 24-hour value, so "17" is 5pm but
// "5" is 5am. Returns ok=false for anything outside the grammar, including
// the literal words "closed", "by appointment" and "open 24 hours".
func ParseTime(token string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "" {
		return 0, false
	}

	meridian := ""
	if strings.HasSuffix(s, "am") || strings.HasSuffix(s, "pm") {
		meridian = s[len(s)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}

	hourPart, minutePart := s, ""
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hourPart, minutePart = s[:i], s[i+1:]
	}

	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 {
		return 0, false
	}

	minute := 0
	if minutePart != "" {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 {
			return 0, false
		}
	}

	switch meridian {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	value := float64(hour) + float64(minute)/60
	if value >= 24 {
		return 0, false
	}
	return value, true
}

// FormatClock renders fractional hours as "H:MMam" / "H:MMpm" display text.
// Hours are floored and minutes rounded, matching how closing times are
// announced ("Open until 5:30pm").
func FormatClock(hoursDecimal float64) string {
	h := int(math.Floor(hoursDecimal))
	m := int(math.Round((hoursDecimal - float64(h)) * 60))

	switch {
	case h == 0:
		return fmt.Sprintf("12:%02dam", m)
	case h < 12:
		return fmt.Sprintf("%d:%02dam", h, m)
	case h == 12:
		return fmt.Sprintf("12:%02dpm", m)
	default:
		return fmt.Sprintf("%d:%02dpm", h-12, m)
	}
}
