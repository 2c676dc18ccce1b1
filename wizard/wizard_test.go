package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/omrkit/numeral"
	"github.com/ByLCY/omrkit/sheet"
	"github.com/ByLCY/omrkit/theme"
)

type stubDriver struct {
	inputs     []string
	selectIdx  []int
	confirm    []bool
	messages   []string
	inputPos   int
	selectPos  int
	confirmPos int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil && val != "" {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func TestRunBoard(t *testing.T) {
	d := &stubDriver{
		// questions, institution, address, set codes
		inputs: []string{"70", "Dhaka College", "Dhaka", "ক, খ"},
		// variant, header, info, theme, numerals
		selectIdx: []int{0, 1, 1, 2, 0},
	}
	got, err := Run(context.Background(), d)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := sheet.Normalize(sheet.Config{
		Variant:       sheet.Board,
		QuestionCount: 70,
		HeaderSize:    sheet.HeaderBig,
		InfoMode:      sheet.InfoManual,
		Theme:         theme.Blue,
		Numerals:      numeral.Bengali,
		Institution:   "Dhaka College",
		Address:       "Dhaka",
		SetCodes:      []string{"ক", "খ"},
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got.QuestionCount != 80 {
		t.Fatalf("expected the 80 tier, got %d", got.QuestionCount)
	}
	if d.confirmPos != 0 {
		t.Fatalf("board flow must not ask about copies")
	}
}

func TestRunNormalTwoCopies(t *testing.T) {
	d := &stubDriver{
		inputs:    []string{"", "", "", ""},
		selectIdx: []int{1, 2, 0, 1},
		confirm:   []bool{true},
	}
	got, err := Run(context.Background(), d)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Variant != sheet.Normal || got.PagesPerSheet != 2 {
		t.Fatalf("unexpected config: %+v", got)
	}
	// two copies force three columns
	if got.Columns != sheet.TwoPageColumns || got.QuestionCount != sheet.DefaultNormalQuestions {
		t.Fatalf("unexpected grid: %d questions in %d columns", got.QuestionCount, got.Columns)
	}
	if got.Numerals != numeral.Latin || got.Theme != theme.Red {
		t.Fatalf("unexpected script or theme: %v %v", got.Numerals, got.Theme)
	}
}

func TestRunRejectsBadCount(t *testing.T) {
	d := &stubDriver{inputs: []string{"five"}, selectIdx: []int{1}}
	if _, err := Run(context.Background(), d); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestRunStopsOnAbort(t *testing.T) {
	d := &stubDriver{}
	_, err := Run(context.Background(), &abortDriver{d})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortDriver struct{ *stubDriver }

func (a *abortDriver) Select(context.Context, SelectConfig) (int, error) {
	return 0, ErrAborted
}
