// AniLife - Anime Catalog and Recommendation Service
// Copyright 2026 cce459
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cce459/AniLifeClone

package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name   string `json:"name" validate:"notblank"`
	Rating string `json:"rating" validate:"decimal"`
	Count  int    `json:"count" validate:"min=1"`
	Status string `json:"status" validate:"omitempty,oneof=COMPLETED ONGOING"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     sample
		wantField string
	}{
		{"valid", sample{Name: "신의 탑", Rating: "8.9", Count: 13}, ""},
		{"blank name", sample{Name: "   ", Rating: "8.9", Count: 1}, "name"},
		{"bad rating", sample{Name: "a", Rating: "great", Count: 1}, "rating"},
		{"exponent rating", sample{Name: "a", Rating: "9.5e0", Count: 1}, ""},
		{"infinite rating", sample{Name: "a", Rating: "Inf", Count: 1}, "rating"},
		{"signed infinite rating", sample{Name: "a", Rating: "+Infinity", Count: 1}, "rating"},
		{"nan rating", sample{Name: "a", Rating: "NaN", Count: 1}, "rating"},
		{"hex rating", sample{Name: "a", Rating: "0x1p3", Count: 1}, "rating"},
		{"overflowing rating", sample{Name: "a", Rating: "1e400", Count: 1}, "rating"},
		{"underscored rating", sample{Name: "a", Rating: "1_0", Count: 1}, "rating"},
		{"zero count", sample{Name: "a", Rating: "1", Count: 0}, "count"},
		{"bad status", sample{Name: "a", Rating: "1", Count: 1, Status: "PAUSED"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := err.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	err := ValidateStruct(&sample{Rating: "x"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("expected multi-field details, got %v", apiErr.Details)
	}
	if !strings.Contains(apiErr.Message, "name must not be blank") {
		t.Errorf("message = %q", apiErr.Message)
	}
}
