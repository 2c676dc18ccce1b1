// Package wizard asks for a sheet configuration on the terminal.
package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ByLCY/omrkit/numeral"
	"github.com/ByLCY/omrkit/sheet"
	"github.com/ByLCY/omrkit/theme"
)

var (
	variants  = []string{string(sheet.Board), string(sheet.Normal)}
	headers   = []string{string(sheet.HeaderSmall), string(sheet.HeaderBig)}
	infoModes = []string{string(sheet.InfoDigital), string(sheet.InfoManual)}
	columns   = []string{"2", "3", "4"}
	numerals  = []numeral.System{numeral.Bengali, numeral.Latin}
)

// Run asks the questions needed to compose a sheet and returns the
// normalized configuration.
func Run(ctx context.Context, d PromptDriver) (sheet.Config, error) {
	var c sheet.Config

	i, err := d.Select(ctx, SelectConfig{Message: "Sheet type", Options: variants})
	if err != nil {
		return c, err
	}
	c.Variant = sheet.Variant(pick(variants, i))

	if c.Variant == sheet.Board {
		if c.QuestionCount, err = askInt(ctx, d, "Questions (40, 60, 80 or 100)", sheet.DefaultBoardQuestions, 1, sheet.MaxNormalQuestions); err != nil {
			return c, err
		}
		if i, err = d.Select(ctx, SelectConfig{Message: "Header", Options: headers}); err != nil {
			return c, err
		}
		c.HeaderSize = sheet.HeaderSize(pick(headers, i))
		if i, err = d.Select(ctx, SelectConfig{
			Message: "Candidate information",
			Options: infoModes,
			Help:    "digital prints bubble panels, manual prints write-in lines",
		}); err != nil {
			return c, err
		}
		c.InfoMode = sheet.InfoMode(pick(infoModes, i))
	} else {
		if c.QuestionCount, err = askInt(ctx, d, "Questions", sheet.DefaultNormalQuestions, sheet.MinNormalQuestions, sheet.MaxNormalQuestions); err != nil {
			return c, err
		}
		if i, err = d.Select(ctx, SelectConfig{Message: "Columns", Options: columns}); err != nil {
			return c, err
		}
		c.Columns, _ = strconv.Atoi(pick(columns, i))
		two, err := d.Confirm(ctx, ConfirmConfig{
			Message: "Print two copies per page?",
			Help:    fmt.Sprintf("two copies use %d columns and at most %d questions", sheet.TwoPageColumns, sheet.TwoPageQuestions),
		})
		if err != nil {
			return c, err
		}
		c.PagesPerSheet = 1
		if two {
			c.PagesPerSheet = 2
		}
	}

	themes := theme.All()
	themeNames := make([]string, len(themes))
	for k, n := range themes {
		themeNames[k] = n.String()
	}
	if i, err = d.Select(ctx, SelectConfig{Message: "Theme", Options: themeNames}); err != nil {
		return c, err
	}
	if i >= 0 && i < len(themes) {
		c.Theme = themes[i]
	}

	numeralNames := make([]string, len(numerals))
	for k, n := range numerals {
		numeralNames[k] = n.String()
	}
	if i, err = d.Select(ctx, SelectConfig{Message: "Numerals", Options: numeralNames}); err != nil {
		return c, err
	}
	if i >= 0 && i < len(numerals) {
		c.Numerals = numerals[i]
	}

	if c.Institution, err = d.Input(ctx, InputConfig{Message: "Institution (optional)"}); err != nil {
		return c, err
	}
	if c.Address, err = d.Input(ctx, InputConfig{Message: "Address (optional)"}); err != nil {
		return c, err
	}
	codes, err := d.Input(ctx, InputConfig{
		Message: "Set codes (comma separated, optional)",
		Help:    fmt.Sprintf("at most %d codes are printed", sheet.MaxSetCodes),
	})
	if err != nil {
		return c, err
	}
	for _, code := range strings.Split(codes, ",") {
		if code = strings.TrimSpace(code); code != "" {
			c.SetCodes = append(c.SetCodes, code)
		}
	}

	return sheet.Normalize(c), nil
}

func askInt(ctx context.Context, d PromptDriver, msg string, def, lo, hi int) (int, error) {
	validate := func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.Errorf("%q is not a number", s)
		}
		if n < lo || n > hi {
			return errors.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
	s, err := d.Input(ctx, InputConfig{Message: msg, Default: strconv.Itoa(def), Validator: validate})
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	if err := validate(s); err != nil {
		return 0, errors.Wrap(err, msg)
	}
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n, nil
}

func pick(options []string, i int) string {
	if i < 0 || i >= len(options) {
		return options[0]
	}
	return options[i]
}
