package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourOfDay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"12-hour afternoon", "2:30 PM", 14},
		{"midnight", "12:00 AM", 0},
		{"noon", "12:00 PM", 12},
		{"24-hour morning", "09:00", 9},
		{"24-hour evening", "21:45", 21},
		{"lowercase pm", "5:15 pm", 17},
		{"lowercase am", "12:30am", 0},
		{"single digit", "7:05", 7},
		{"padded", "  7:05 AM ", 7},
		{"no separator", "Night", 0},
		{"empty string", "", 0},
		{"non-numeric hour", "noon:00", 0},
		{"out of range passes through", "26:00", 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HourOfDay(tt.input))
		})
	}
}

func TestTimeOfDayFor(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, TimeOfDayNight},
		{4, TimeOfDayNight},
		{5, TimeOfDayMorning},
		{11, TimeOfDayMorning},
		{12, TimeOfDayAfternoon},
		{16, TimeOfDayAfternoon},
		{17, TimeOfDayEvening},
		{20, TimeOfDayEvening},
		{21, TimeOfDayNight},
		{23, TimeOfDayNight},
		{-1, ""},
		{24, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeOfDayFor(tt.hour), "hour %d", tt.hour)
	}
}

func TestParseDate(t *testing.T) {
	t.Run("accepted layouts", func(t *testing.T) {
		for _, input := range []string{"2024-04-13", "13/04/2024", "2024/04/13", "13-04-2024"} {
			parsed, ok := ParseDate(input)
			assert.True(t, ok, "input %q", input)
			assert.Equal(t, "2024-04-13", parsed.Format("2006-01-02"), "input %q", input)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, input := range []string{"", "yesterday", "13/13/2024", "2024"} {
			_, ok := ParseDate(input)
			assert.False(t, ok, "input %q", input)
		}
	})
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-04-13", NormalizeDate("13/04/2024"))
	assert.Equal(t, "2024-04-13", NormalizeDate("2024-04-13"))
	assert.Equal(t, "not a date", NormalizeDate("  not a date "))
	assert.Equal(t, "", NormalizeDate(""))
}
