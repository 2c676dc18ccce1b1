// Package numeral renders integers and answer-option indices in the scripts
// printed on answer sheets.
package numeral

import (
	"fmt"
	"strconv"
	"strings"
)

// System selects the script used for printed labels.
type System int

const (
	// Unset is normalised to Bengali by the sheet composer.
	Unset System = iota
	Latin
	Bengali
)

var bengaliDigits = [10]string{"০", "১", "২", "৩", "৪", "৫", "৬", "৭", "৮", "৯"}

var options = map[System][5]string{
	Latin:   {"A", "B", "C", "D", "E"},
	Bengali: {"ক", "খ", "গ", "ঘ", "ঙ"},
}

// String returns the config name of s.
func (s System) String() string {
	switch s {
	case Latin:
		return "latin"
	case Bengali:
		return "bengali"
	default:
		return ""
	}
}

// Parse resolves a config name. Unknown names yield Unset.
func Parse(name string) System {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "latin", "en", "english":
		return Latin
	case "bengali", "bangla", "bn":
		return Bengali
	default:
		return Unset
	}
}

// Format renders a non-negative integer. Bengali maps every decimal digit
// independently; every other system prints plain decimal digits.
func Format(n int, s System) string {
	latin := strconv.Itoa(n)
	if s != Bengali {
		return latin
	}
	var b strings.Builder
	for _, r := range latin {
		if r >= '0' && r <= '9' {
			b.WriteString(bengaliDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Digit renders a single digit 0-9.
func Digit(d int, s System) string {
	if s == Bengali {
		return bengaliDigits[d]
	}
	return strconv.Itoa(d)
}

// Option returns the option letter for index i (0-4). Other indices panic.
func Option(i int, s System) string {
	if s != Bengali {
		s = Latin
	}
	return options[s][i]
}

// Options returns the first n option letters.
func Options(n int, s System) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = Option(i, s)
	}
	return out
}

// ParseDigits parses a run of Latin or Bengali decimal digits.
func ParseDigits(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("numeral: empty input")
	}
	n := 0
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok {
			return 0, fmt.Errorf("numeral: invalid digit %q in %q", r, s)
		}
		n = n*10 + d
	}
	return n, nil
}

func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= '০' && r <= '৯':
		return int(r - '০'), true
	}
	return 0, false
}
