// Package config loads sheet definitions from files and service settings
// from the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/omrkit/dsl"
	"github.com/ByLCY/omrkit/numeral"
	"github.com/ByLCY/omrkit/sheet"
	"github.com/ByLCY/omrkit/theme"
)

// ErrUnknownFormat is returned for sheet files with an unsupported extension.
var ErrUnknownFormat = errors.New("config: unknown sheet file format")

// sheetFile is the JSON/YAML shape of a sheet definition.
type sheetFile struct {
	Type         string   `json:"type" yaml:"type"`
	Questions    int      `json:"questions" yaml:"questions"`
	Columns      int      `json:"columns" yaml:"columns"`
	Pages        int      `json:"pages" yaml:"pages"`
	Theme        string   `json:"theme" yaml:"theme"`
	Numerals     string   `json:"numerals" yaml:"numerals"`
	Options      string   `json:"options" yaml:"options"`
	SetCodes     []string `json:"setCodes" yaml:"setCodes"`
	Header       string   `json:"header" yaml:"header"`
	Info         string   `json:"info" yaml:"info"`
	Institution  string   `json:"institution" yaml:"institution"`
	Address      string   `json:"address" yaml:"address"`
	TitleSize    float64  `json:"titleSize" yaml:"titleSize"`
	AddressSize  float64  `json:"addressSize" yaml:"addressSize"`
	ClassLevels  []int    `json:"classLevels" yaml:"classLevels"`
	Instructions string   `json:"instructions" yaml:"instructions"`
}

// LoadSheet reads a sheet definition. The format follows the extension:
// .omr (sheet DSL), .yaml/.yml, or .json (YAML is accepted as a fallback).
func LoadSheet(path string) (sheet.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sheet.Config{}, errors.Wrap(err, "config: read sheet")
	}
	return ParseSheet(data, path)
}

// ParseSheet decodes sheet file contents; source supplies the extension and
// error positions.
func ParseSheet(data []byte, source string) (sheet.Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return sheet.Config{}, errors.Errorf("config: sheet file %s is empty", source)
	}

	var raw sheetFile
	switch strings.ToLower(filepath.Ext(source)) {
	case ".omr":
		f, err := dsl.Parse(source, bytes.NewReader(data))
		if err != nil {
			return sheet.Config{}, errors.Wrap(err, "config: parse sheet")
		}
		cfg, err := dsl.Decode(f)
		return cfg, errors.Wrap(err, "config: decode sheet")
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil {
			return sheet.Config{}, errors.Wrapf(err, "config: parse %s", source)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			if yerr := yaml.Unmarshal(data, &raw); yerr != nil {
				return sheet.Config{}, errors.Errorf("config: parse %s: invalid JSON or YAML", source)
			}
		}
	default:
		return sheet.Config{}, errors.Wrapf(ErrUnknownFormat, "%q", source)
	}
	return raw.config()
}

func (f sheetFile) config() (sheet.Config, error) {
	cfg := sheet.Config{
		QuestionCount: f.Questions,
		Columns:       f.Columns,
		PagesPerSheet: f.Pages,
		SetCodes:      f.SetCodes,
		Institution:   f.Institution,
		Address:       f.Address,
		TitleSize:     f.TitleSize,
		AddressSize:   f.AddressSize,
		ClassLevels:   f.ClassLevels,
		Instructions:  f.Instructions,
	}
	if f.Type != "" {
		if cfg.Variant = sheet.ParseVariant(f.Type); cfg.Variant == "" {
			return cfg, errors.Errorf("config: unknown sheet type %q", f.Type)
		}
	}
	// unknown palettes fall back to the default when normalized
	cfg.Theme, _ = theme.Parse(f.Theme)

	var err error
	if cfg.Numerals, err = system("numerals", f.Numerals); err != nil {
		return cfg, err
	}
	if cfg.OptionScript, err = system("options", f.Options); err != nil {
		return cfg, err
	}
	if f.Header != "" {
		if cfg.HeaderSize = sheet.ParseHeaderSize(f.Header); cfg.HeaderSize == "" {
			return cfg, errors.Errorf("config: unknown header size %q", f.Header)
		}
	}
	if f.Info != "" {
		if cfg.InfoMode = sheet.ParseInfoMode(f.Info); cfg.InfoMode == "" {
			return cfg, errors.Errorf("config: unknown info mode %q", f.Info)
		}
	}
	return cfg, nil
}

func system(field, name string) (numeral.System, error) {
	if name == "" {
		return numeral.Unset, nil
	}
	s := numeral.Parse(name)
	if s == numeral.Unset {
		return s, errors.Errorf("config: unknown %s system %q", field, name)
	}
	return s, nil
}
