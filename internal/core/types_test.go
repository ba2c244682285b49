package core

import (
	"errors"
	"testing"
)

func TestRawFinancials_Get(t *testing.T) {
	raw := RawFinancials{FieldCurrentRatio: 1.7, FieldQuickRatio: 0}

	if got := raw.Get(FieldCurrentRatio, 0); got != 1.7 {
		t.Errorf("expected 1.7, got %v", got)
	}
	if got := raw.Get(FieldQuickRatio, 9); got != 0 {
		t.Errorf("present zero should not take default, got %v", got)
	}
	if got := raw.Get(FieldRecommendationMean, 3); got != 3 {
		t.Errorf("expected default 3, got %v", got)
	}

	var empty RawFinancials
	if got := empty.Get(FieldReturnOnEquity, 0); got != 0 {
		t.Errorf("nil map should yield default, got %v", got)
	}
}

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"aapl", "AAPL", false},
		{"  msft ", "MSFT", false},
		{"BRK-B", "BRK-B", false},
		{"", "", true},
		{"   ", "", true},
	}

	for _, tc := range tests {
		got, err := NormalizeTicker(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidTicker) {
				t.Errorf("NormalizeTicker(%q) expected INVALID_TICKER, got %v", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeTicker(%q) unexpected error: %v", tc.input, err)
		}
		if got != tc.expected {
			t.Errorf("NormalizeTicker(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
