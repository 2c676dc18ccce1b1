package sheet

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ByLCY/omrkit/numeral"
	"github.com/ByLCY/omrkit/theme"
)

// Variant selects one of the two sheet layouts.
type Variant string

const (
	Board  Variant = "board"
	Normal Variant = "normal"
)

// HeaderSize selects the Board header block.
type HeaderSize string

const (
	HeaderSmall HeaderSize = "small"
	HeaderBig   HeaderSize = "big"
)

// InfoMode selects how a Board sheet collects candidate identity.
type InfoMode string

const (
	// InfoDigital prints bubble panels for class, roll, subject and set code.
	InfoDigital InfoMode = "digital"
	// InfoManual prints write-in lines and exam-type check boxes.
	InfoManual InfoMode = "manual"
)

// ParseVariant maps a name to a Variant; unknown names yield "".
func ParseVariant(s string) Variant {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case Board, Normal:
		return v
	}
	return ""
}

// ParseHeaderSize maps a name to a HeaderSize; unknown names yield "".
func ParseHeaderSize(s string) HeaderSize {
	switch h := HeaderSize(strings.ToLower(strings.TrimSpace(s))); h {
	case HeaderSmall, HeaderBig:
		return h
	}
	return ""
}

// ParseInfoMode maps a name to an InfoMode; unknown names yield "".
func ParseInfoMode(s string) InfoMode {
	switch m := InfoMode(strings.ToLower(strings.TrimSpace(s))); m {
	case InfoDigital, InfoManual:
		return m
	}
	return ""
}

// Config is everything a sheet is composed from. Any value is accepted;
// Normalize maps it onto the supported domain.
type Config struct {
	Variant       Variant        `json:"variant"`
	QuestionCount int            `json:"questionCount"`
	Columns       int            `json:"columns"`
	PagesPerSheet int            `json:"pagesPerSheet"`
	Numerals      numeral.System `json:"numerals"`
	OptionScript  numeral.System `json:"optionScript"`
	SetCodes      []string       `json:"setCodes"`
	Theme         theme.Name     `json:"theme"`
	HeaderSize    HeaderSize     `json:"headerSize"`
	InfoMode      InfoMode       `json:"infoMode"`
	Institution   string         `json:"institution"`
	Address       string         `json:"address"`
	TitleSize     float64        `json:"titleSize"`   // px
	AddressSize   float64        `json:"addressSize"` // px
	ClassLevels   []int          `json:"classLevels"`
	Instructions  string         `json:"instructions"` // Markdown list
}

// Supported ranges.
const (
	MinNormalQuestions     = 10
	MaxNormalQuestions     = 100
	DefaultNormalQuestions = 30
	DefaultBoardQuestions  = 100
	MinColumns             = 2
	MaxColumns             = 4
	MaxSetCodes            = 4
	// TwoPageColumns and TwoPageQuestions bind a two-copy sheet.
	TwoPageColumns   = 3
	TwoPageQuestions = 30

	MinTitleSize       = 10
	MaxTitleSize       = 40
	DefaultTitleSize   = 24
	MinAddressSize     = 10
	MaxAddressSize     = 30
	DefaultAddressSize = 14

	maxClassLevels = 8
)

var defaultClassLevels = []int{6, 7, 8, 9, 10, 11, 12}

// BoardQuestions maps a requested count onto the Board tiers 40/60/80/100.
// Non-positive counts select the largest tier.
func BoardQuestions(q int) int {
	switch {
	case q <= 0:
		return DefaultBoardQuestions
	case q > 80:
		return 100
	case q > 60:
		return 80
	case q > 40:
		return 60
	default:
		return 40
	}
}

// BoardPerColumn is the number of questions in each Board answer column.
func BoardPerColumn(q int) int {
	if q == 100 {
		return 25
	}
	return 20
}

// Normalize clamps every field of c into its supported domain and fills
// defaults. Normalize(Normalize(c)) == Normalize(c).
func Normalize(c Config) Config {
	if c.Variant != Board {
		c.Variant = Normal
	}
	if c.Numerals != numeral.Latin {
		c.Numerals = numeral.Bengali
	}
	if c.OptionScript != numeral.Latin && c.OptionScript != numeral.Bengali {
		c.OptionScript = c.Numerals
	}
	c.Theme = c.Theme.Resolve()
	c.SetCodes = normalizeSetCodes(c.SetCodes, c.OptionScript)
	c.Institution = strings.TrimSpace(c.Institution)
	c.Address = strings.TrimSpace(c.Address)
	c.Instructions = strings.TrimSpace(c.Instructions)
	c.TitleSize = clampSize(c.TitleSize, MinTitleSize, MaxTitleSize, DefaultTitleSize)
	c.AddressSize = clampSize(c.AddressSize, MinAddressSize, MaxAddressSize, DefaultAddressSize)

	switch c.Variant {
	case Board:
		c.QuestionCount = BoardQuestions(c.QuestionCount)
		per := BoardPerColumn(c.QuestionCount)
		c.Columns = (c.QuestionCount + per - 1) / per
		c.PagesPerSheet = 1
		if c.HeaderSize != HeaderBig {
			c.HeaderSize = HeaderSmall
		}
		if c.InfoMode != InfoManual {
			c.InfoMode = InfoDigital
		}
		c.ClassLevels = normalizeClassLevels(c.ClassLevels)
	default:
		if c.QuestionCount == 0 {
			c.QuestionCount = DefaultNormalQuestions
		}
		c.QuestionCount = clamp(c.QuestionCount, MinNormalQuestions, MaxNormalQuestions)
		if c.Columns == 0 {
			c.Columns = MinColumns
		}
		c.Columns = clamp(c.Columns, MinColumns, MaxColumns)
		if c.PagesPerSheet == 0 {
			c.PagesPerSheet = 1
		}
		c.PagesPerSheet = clamp(c.PagesPerSheet, 1, 2)
		if c.PagesPerSheet == 2 {
			c.Columns = TwoPageColumns
			if c.QuestionCount > TwoPageQuestions {
				c.QuestionCount = TwoPageQuestions
			}
		}
		// Board-only fields
		c.HeaderSize = ""
		c.InfoMode = ""
		c.ClassLevels = nil
	}
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampSize treats NaN like an unset size.
func clampSize(v, lo, hi, def float64) float64 {
	switch {
	case v == 0 || math.IsNaN(v):
		return def
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func normalizeSetCodes(in []string, script numeral.System) []string {
	out := make([]string, 0, MaxSetCodes)
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) != 1 || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == MaxSetCodes {
			break
		}
	}
	if len(out) == 0 {
		return numeral.Options(MaxSetCodes, script)
	}
	return out
}

func normalizeClassLevels(in []int) []int {
	out := make([]int, 0, maxClassLevels)
	seen := make(map[int]bool, len(in))
	for _, lvl := range in {
		if lvl <= 0 || seen[lvl] {
			continue
		}
		seen[lvl] = true
		out = append(out, lvl)
		if len(out) == maxClassLevels {
			break
		}
	}
	if len(out) == 0 {
		return append(out, defaultClassLevels...)
	}
	return out
}

// Pages returns the number of physical copies a normalized config prints.
func (c Config) Pages() int {
	if c.PagesPerSheet < 1 {
		return 1
	}
	return c.PagesPerSheet
}
