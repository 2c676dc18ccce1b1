package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/omrkit/geometry"
	"github.com/ByLCY/omrkit/numeral"
	"github.com/ByLCY/omrkit/sheet"
	"github.com/ByLCY/omrkit/theme"
)

// Decode converts a parsed file into a sheet configuration. Values are
// checked for type and vocabulary only; ranges are left to sheet.Normalize.
// Unknown theme names fall back to the default palette.
func Decode(f *File) (sheet.Config, error) {
	var cfg sheet.Config
	if f == nil || f.Body == nil {
		return cfg, fmt.Errorf("dsl: empty file")
	}
	cfg.Variant = sheet.ParseVariant(f.Variant)
	if cfg.Variant == "" {
		return cfg, fmt.Errorf("%s: unknown sheet variant %q", f.Pos, f.Variant)
	}
	if err := decodeBlock(&cfg, f.Body, ""); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DecodeString parses and decodes in one step.
func DecodeString(input string) (sheet.Config, error) {
	f, err := ParseString(input)
	if err != nil {
		return sheet.Config{}, err
	}
	return Decode(f)
}

func decodeBlock(cfg *sheet.Config, b *Block, scope string) error {
	var rules []string
	for _, st := range b.Statements {
		switch {
		case st.Assignment != nil:
			if err := assign(cfg, st.Assignment); err != nil {
				return err
			}
		case st.Section != nil:
			if err := section(cfg, st.Section); err != nil {
				return err
			}
		case st.Text != nil:
			if scope != "instructions" {
				return fmt.Errorf("dsl: bare text is only allowed inside instructions")
			}
			rules = append(rules, strings.TrimSpace(string(st.Text.Value)))
		}
	}
	if len(rules) > 0 {
		var sb strings.Builder
		for i, r := range rules {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, r)
		}
		cfg.Instructions = sb.String()
	}
	return nil
}

func section(cfg *sheet.Config, s *Section) error {
	switch s.Name {
	case "branding", "instructions":
		return decodeBlock(cfg, s.Block, s.Name)
	}
	return fmt.Errorf("%s: unknown section %q", s.Pos, s.Name)
}

func assign(cfg *sheet.Config, a *Assignment) error {
	var err error
	switch a.Key {
	case "questions":
		cfg.QuestionCount, err = intValue(a)
	case "columns":
		cfg.Columns, err = intValue(a)
	case "pages":
		cfg.PagesPerSheet, err = intValue(a)
	case "theme":
		var name string
		if name, err = wordValue(a); err == nil {
			cfg.Theme, _ = theme.Parse(name)
		}
	case "numerals", "options":
		var name string
		if name, err = wordValue(a); err != nil {
			break
		}
		sys := numeral.Parse(name)
		if sys == numeral.Unset {
			return fmt.Errorf("%s: unknown numeral system %q", a.Pos, name)
		}
		if a.Key == "numerals" {
			cfg.Numerals = sys
		} else {
			cfg.OptionScript = sys
		}
	case "header":
		var name string
		if name, err = wordValue(a); err == nil {
			if cfg.HeaderSize = sheet.ParseHeaderSize(name); cfg.HeaderSize == "" {
				return fmt.Errorf("%s: unknown header size %q", a.Pos, name)
			}
		}
	case "info":
		var name string
		if name, err = wordValue(a); err == nil {
			if cfg.InfoMode = sheet.ParseInfoMode(name); cfg.InfoMode == "" {
				return fmt.Errorf("%s: unknown info mode %q", a.Pos, name)
			}
		}
	case "set-codes":
		cfg.SetCodes, err = stringsValue(a)
	case "class-levels":
		cfg.ClassLevels, err = intsValue(a)
	case "institution":
		cfg.Institution, err = stringValue(a)
	case "address":
		cfg.Address, err = stringValue(a)
	case "title-size":
		cfg.TitleSize, err = sizeValue(a)
	case "address-size":
		cfg.AddressSize, err = sizeValue(a)
	case "instructions":
		cfg.Instructions, err = stringValue(a)
	default:
		return fmt.Errorf("%s: unknown key %q", a.Pos, a.Key)
	}
	return err
}

func typeError(pos lexer.Position, key, want string) error {
	return fmt.Errorf("%s: %s expects %s", pos, key, want)
}

func intValue(a *Assignment) (int, error) {
	if a.Value.Number == nil {
		return 0, typeError(a.Pos, a.Key, "an integer")
	}
	n, err := strconv.Atoi(*a.Value.Number)
	if err != nil {
		return 0, typeError(a.Pos, a.Key, "an integer")
	}
	return n, nil
}

func stringValue(a *Assignment) (string, error) {
	if a.Value.String == nil {
		return "", typeError(a.Pos, a.Key, "a string")
	}
	return string(*a.Value.String), nil
}

// wordValue accepts either a bare identifier or a quoted string.
func wordValue(a *Assignment) (string, error) {
	switch {
	case a.Value.Ident != nil:
		return *a.Value.Ident, nil
	case a.Value.String != nil:
		return string(*a.Value.String), nil
	}
	return "", typeError(a.Pos, a.Key, "a name")
}

func sizeValue(a *Assignment) (float64, error) {
	if a.Value.Number == nil {
		return 0, typeError(a.Pos, a.Key, "a size")
	}
	l, ok := geometry.ParseLength(*a.Value.Number)
	if !ok {
		return 0, typeError(a.Pos, a.Key, "a size")
	}
	return l.ToPX(), nil
}

func stringsValue(a *Assignment) ([]string, error) {
	if a.Value.Array == nil {
		return nil, typeError(a.Pos, a.Key, "a list of strings")
	}
	out := make([]string, 0, len(a.Value.Array.Values))
	for _, v := range a.Value.Array.Values {
		switch {
		case v.String != nil:
			out = append(out, string(*v.String))
		case v.Ident != nil:
			out = append(out, *v.Ident)
		default:
			return nil, typeError(a.Pos, a.Key, "a list of strings")
		}
	}
	return out, nil
}

func intsValue(a *Assignment) ([]int, error) {
	if a.Value.Array == nil {
		return nil, typeError(a.Pos, a.Key, "a list of integers")
	}
	out := make([]int, 0, len(a.Value.Array.Values))
	for _, v := range a.Value.Array.Values {
		if v.Number == nil {
			return nil, typeError(a.Pos, a.Key, "a list of integers")
		}
		n, err := strconv.Atoi(*v.Number)
		if err != nil {
			return nil, typeError(a.Pos, a.Key, "a list of integers")
		}
		out = append(out, n)
	}
	return out, nil
}
