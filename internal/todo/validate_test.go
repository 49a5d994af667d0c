package todo

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{"empty", "", ErrTitleRequired},
		{"whitespace only", "  ", ErrTitleRequired},
		{"one character", "a", ErrTitleTooShort},
		{"two characters trimmed", "  ab  ", ErrTitleTooShort},
		{"three characters", "abc", nil},
		{"exactly 100", strings.Repeat("x", 100), nil},
		{"101 characters", strings.Repeat("x", 101), ErrTitleTooLong},
		{"100 with surrounding space", "  " + strings.Repeat("x", 100) + "  ", nil},
		{"multibyte counted as runes", strings.Repeat("é", 100), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTitle(%q) = %v, want %v", tt.title, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTitleMessages(t *testing.T) {
	if err := ValidateTitle(""); err == nil || err.Error() != "Title is required" {
		t.Errorf("empty title message: %v", err)
	}
	if err := ValidateTitle("  "); err == nil || err.Error() != "Title is required" {
		t.Errorf("blank title message: %v", err)
	}
	if err := ValidateTitle("ab"); err == nil || !strings.Contains(err.Error(), "at least 3") {
		t.Errorf("short title message: %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription(""); err != nil {
		t.Errorf("empty description should pass, got %v", err)
	}
	if err := ValidateDescription(strings.Repeat("d", 500)); err != nil {
		t.Errorf("500 characters should pass, got %v", err)
	}
	if err := ValidateDescription(strings.Repeat("d", 501)); !errors.Is(err, ErrDescriptionTooLong) {
		t.Errorf("501 characters should fail, got %v", err)
	}
}

func TestValidateInput(t *testing.T) {
	errs := ValidateInput(Input{Title: "", Description: strings.Repeat("d", 501), Status: "nope"})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), errs)
	}
	paths := []string{errs[0].Path, errs[1].Path, errs[2].Path}
	want := []string{"title", "description", "status"}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("error %d path: got %s, want %s", i, paths[i], want[i])
		}
	}
	if !errors.Is(errs[0], ErrTitleRequired) {
		t.Errorf("title error should unwrap to ErrTitleRequired, got %v", errs[0])
	}

	if errs := ValidateInput(Input{Title: "Valid title"}); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestInputNormalize(t *testing.T) {
	in := Input{Title: "  Buy milk  ", Description: " two litres "}.Normalize()
	if in.Title != "Buy milk" || in.Description != "two litres" {
		t.Errorf("Normalize did not trim: %+v", in)
	}
	if in.Status != StatusPending {
		t.Errorf("Status: got %q, want pending", in.Status)
	}
}
