package hours

import "strings"

// DayKind is the categorical interpretation of one day's raw schedule text.
type DayKind int

const (
	// DayNoData means the day has no usable schedule text.
	DayNoData DayKind = iota
	// DayClosed means the day is explicitly marked closed.
	DayClosed
	// DayByAppointment means visitors must call ahead.
	DayByAppointment
	// DayOpen24h means the resource never closes that day.
	DayOpen24h
	// DayIntervals means the day has one or more parsed open windows.
	DayIntervals
)

// DayClass is the tagged classification of a single day. Intervals is only
// populated when Kind is DayIntervals, and may be empty when every segment of
// a non-empty raw value failed to parse.
type DayClass struct {
	Kind      DayKind
	Intervals []Interval
}

// Classify interprets one day's raw schedule text. Matching on the literal
// forms is case-insensitive and whitespace-tolerant. Comma-separated range
// segments that fail to parse are dropped silently; human-entered schedule
// data is noisy and a partial read beats no read.
func Classify(raw string) DayClass {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "":
		return DayClass{Kind: DayNoData}
	case "closed":
		return DayClass{Kind: DayClosed}
	case "by appointment":
		return DayClass{Kind: DayByAppointment}
	case "open 24 hours", "0:00-23:59":
		return DayClass{Kind: DayOpen24h}
	}

	intervals := make([]Interval, 0, 2)
	for _, segment := range strings.Split(s, ",") {
		if iv, ok := parseSegment(segment); ok {
			intervals = append(intervals, iv)
		}
	}
	return DayClass{Kind: DayIntervals, Intervals: intervals}
}

// parseSegment parses one "<start>-<end>" range. Segments without a dash,
// with an unparseable side, or with end before start are rejected; overnight
// wraparound ranges are not supported.
func parseSegment(segment string) (Interval, bool) {
	i := strings.IndexByte(segment, '-')
	if i < 0 {
		return Interval{}, false
	}
	start, ok := ParseTime(segment[:i])
	if !ok {
		return Interval{}, false
	}
	end, ok := ParseTime(segment[i+1:])
	if !ok || end < start {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}
