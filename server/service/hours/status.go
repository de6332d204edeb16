package hours

import (
	"fmt"
	"strings"
	"time"
)

const (
	// closingSoonMinutes is the threshold below which an open resource is
	// flagged yellow ("Closes soon").
	closingSoonMinutes = 30.0
	// openingSoonHours is the threshold below which a later-today opening is
	// flagged yellow instead of orange.
	openingSoonHours = 3.0

	callToConfirm = "Call to confirm hours"
)

// StatusAt evaluates the schedule at the given instant. The rules apply in
// priority order: today's explicit classification first, then a current
// interval match, then later-today openings, and finally the forward search
// across the coming week. Missing data degrades to gray, a known closure with
// a known reopening to red.
func StatusAt(schedule Schedule, now time.Time) Status {
	if len(schedule) == 0 {
		return Status{IsOpen: false, Text: callToConfirm, Color: ColorGray}
	}

	today := Classify(schedule[dayKey(now.Weekday())])
	nowHours := clockHours(now)

	switch today.Kind {
	case DayNoData, DayClosed:
		if text, ok := findNextOpen(schedule, now); ok {
			return Status{IsOpen: false, Text: text, Color: ColorRed}
		}
		return Status{IsOpen: false, Text: callToConfirm, Color: ColorGray}
	case DayOpen24h:
		return Status{IsOpen: true, Text: "Open 24 Hours", Color: ColorGreen}
	case DayByAppointment:
		return Status{IsOpen: false, Text: callToConfirm, Color: ColorGray}
	}

	if len(today.Intervals) == 0 {
		// Non-empty raw text where every segment failed to parse.
		return Status{IsOpen: false, Text: callToConfirm, Color: ColorGray}
	}

	if matched, minutesToClose, ok := evaluateToday(today.Intervals, nowHours); ok {
		closing := FormatClock(matched.End)
		if minutesToClose <= closingSoonMinutes {
			return Status{IsOpen: true, Text: fmt.Sprintf("Closes soon (%s)", closing), Color: ColorYellow}
		}
		return Status{IsOpen: true, Text: fmt.Sprintf("Open until %s", closing), Color: ColorGreen}
	}

	if next, ok := nextIntervalToday(today.Intervals, nowHours); ok {
		color := ColorOrange
		if next.Start-nowHours <= openingSoonHours {
			color = ColorYellow
		}
		return Status{IsOpen: false, Text: fmt.Sprintf("Opens %s", FormatClock(next.Start)), Color: color}
	}

	if text, ok := findNextOpen(schedule, now); ok {
		return Status{IsOpen: false, Text: text, Color: ColorRed}
	}
	return Status{IsOpen: false, Text: callToConfirm, Color: ColorGray}
}

// NextOpenAt describes the next opening relative to now: a later-today window
// if one exists, otherwise the first usable day within the coming week.
func NextOpenAt(schedule Schedule, now time.Time) string {
	today := Classify(schedule[dayKey(now.Weekday())])
	if today.Kind == DayIntervals {
		if next, ok := nextIntervalToday(today.Intervals, clockHours(now)); ok {
			return fmt.Sprintf("Opens %s today", FormatClock(next.Start))
		}
	}
	if text, ok := findNextOpen(schedule, now); ok {
		return text
	}
	return callToConfirm
}

// evaluateToday returns the first interval, in original list order, that
// contains now (inclusive on both ends) along with the minutes remaining
// until it closes. List order is the tie-break when malformed data overlaps.
func evaluateToday(intervals []Interval, now float64) (Interval, float64, bool) {
	for _, iv := range intervals {
		if now >= iv.Start && now <= iv.End {
			return iv, (iv.End - now) * 60, true
		}
	}
	return Interval{}, 0, false
}

// nextIntervalToday picks the earliest interval still ahead of now.
func nextIntervalToday(intervals []Interval, now float64) (Interval, bool) {
	var next Interval
	found := false
	for _, iv := range intervals {
		if iv.Start <= now {
			continue
		}
		if !found || iv.Start < next.Start {
			next = iv
			found = true
		}
	}
	return next, found
}

// findNextOpen walks the seven days after `from` and reports the first usable
// opening. Closed days and days whose text parses to nothing are skipped. A
// by-appointment day stops the search: we cannot promise hours we do not
// have, so the caller gets the call-ahead message even if a later day has a
// normal schedule.
func findNextOpen(schedule Schedule, from time.Time) (string, bool) {
	for offset := 1; offset <= 7; offset++ {
		day := from.AddDate(0, 0, offset)
		raw := schedule[dayKey(day.Weekday())]

		switch cls := Classify(raw); cls.Kind {
		case DayNoData, DayClosed:
			continue
		case DayByAppointment:
			return callToConfirm, true
		case DayOpen24h:
			if offset == 1 {
				return "Opens tomorrow (24 Hours)", true
			}
			return fmt.Sprintf("Opens %s (24 Hours)", day.Weekday()), true
		case DayIntervals:
			if len(cls.Intervals) == 0 {
				continue
			}
			// The first segment of the raw value decides the opening time,
			// even when later segments also parsed.
			first := strings.Split(raw, ",")[0]
			dash := strings.IndexByte(first, '-')
			if dash < 0 {
				continue
			}
			start, ok := ParseTime(first[:dash])
			if !ok {
				continue
			}
			if offset == 1 {
				return fmt.Sprintf("Opens tomorrow %s", FormatClock(start)), true
			}
			return fmt.Sprintf("Opens %s %s", day.Weekday(), FormatClock(start)), true
		}
	}
	return "", false
}
