package hours

import (
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  float64
		ok    bool
	}{
		{"bare hour", "9", 9, true},
		{"bare 24h hour", "17", 17, true},
		{"zero padded", "09:30", 9.5, true},
		{"colon form", "17:30", 17.5, true},
		{"am marker", "9am", 9, true},
		{"pm marker", "5:30pm", 17.5, true},
		{"pm with space", "12:00 pm", 12, true},
		{"12am is midnight", "12am", 0, true},
		{"12pm is noon", "12pm", 12, true},
		{"pm on 12 keeps 12", "12:30pm", 12.5, true},
		{"surrounding whitespace", "  10:15  ", 10.25, true},
		{"uppercase meridian", "9AM", 9, true},
		{"minutes default to zero", "7pm", 19, true},
		{"midnight", "0:00", 0, true},
		{"out of domain hour", "25", 0, false},
		{"24 exactly", "24:00", 0, false},
		{"negative hour", "-5", 0, false},
		{"closed literal", "closed", 0, false},
		{"by appointment literal", "by appointment", 0, false},
		{"open 24 hours literal", "open 24 hours", 0, false},
		{"empty", "", 0, false},
		{"garbage", "noonish", 0, false},
		{"non numeric minutes", "9:3x", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.token)
			if ok != tt.ok {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.token, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "12:00am"},
		{0.5, "12:30am"},
		{9, "9:00am"},
		{11.75, "11:45am"},
		{12, "12:00pm"},
		{13.5, "1:30pm"},
		{17, "5:00pm"},
		{23.983333333333334, "11:59pm"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.hours); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}
