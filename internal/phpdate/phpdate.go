// Package phpdate formats times the way PHP's date() does, for the subset of
// format characters that compile to SQL. It is the reference compiled SQL
// is checked against.
package phpdate

import (
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/sqldatefmt/pkg/datefmt"
)

// Format renders t with a PHP date() format string. Escaping and the set of
// rejected characters match datefmt.
func Format(t time.Time, format string) (string, error) {
	if err := datefmt.Validate(format); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, tok := range datefmt.Tokenize(format) {
		if tok.Literal {
			sb.WriteString(tok.Text)
			continue
		}
		ch := tok.Char()
		if s, ok := formatChar(t, ch); ok {
			sb.WriteString(s)
			continue
		}
		sb.WriteString(tok.Text)
	}
	return sb.String(), nil
}

func formatChar(t time.Time, ch rune) (string, bool) {
	switch ch {
	case 'd':
		return pad2(t.Day()), true
	case 'D':
		return t.Weekday().String()[:3], true
	case 'j':
		return strconv.Itoa(t.Day()), true
	case 'l':
		return t.Weekday().String(), true
	case 'w':
		return strconv.Itoa(int(t.Weekday())), true
	case 'W':
		_, week := t.ISOWeek()
		return pad2(week), true
	case 'F':
		return t.Month().String(), true
	case 'm':
		return pad2(int(t.Month())), true
	case 'M':
		return t.Month().String()[:3], true
	case 'n':
		return strconv.Itoa(int(t.Month())), true
	case 't':
		return strconv.Itoa(DaysInMonth(t)), true
	case 'o':
		year, _ := t.ISOWeek()
		return strconv.Itoa(year), true
	case 'Y':
		return pad(t.Year(), 4), true
	case 'y':
		return pad2(t.Year() % 100), true
	case 'a':
		if t.Hour() < 12 {
			return "am", true
		}
		return "pm", true
	case 'A':
		if t.Hour() < 12 {
			return "AM", true
		}
		return "PM", true
	case 'g':
		return strconv.Itoa(hour12(t)), true
	case 'G':
		return strconv.Itoa(t.Hour()), true
	case 'h':
		return pad2(hour12(t)), true
	case 'H':
		return pad2(t.Hour()), true
	case 'i':
		return pad2(t.Minute()), true
	case 's':
		return pad2(t.Second()), true
	case 'U':
		return strconv.FormatInt(t.Unix(), 10), true
	}
	return "", false
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func hour12(t time.Time) int {
	if h := t.Hour() % 12; h != 0 {
		return h
	}
	return 12
}

func pad2(n int) string {
	return pad(n, 2)
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
