// SPDX-License-Identifier: EPL-2.0

package mains

import (
	"slices"
	"testing"
)

func TestFrequencyForTimezone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		zone string
		want float64
	}{
		{"Europe/London", 50},
		{"Europe/Berlin", 50},
		{"Asia/Jerusalem", 50},
		{"Australia/Sydney", 50},
		{"Asia/Tokyo", 50},
		{"America/New_York", 60},
		{"America/Toronto", 60},
		{"America/Mexico_City", 60},
		{"America/Sao_Paulo", 60},
		{"Asia/Seoul", 60},
		{"Asia/Manila", 60},
		{"UTC", 50},
		{"Etc/GMT+5", 50},
		{"", 50},
		{"Nowhere/Special", 50},
	}

	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			t.Parallel()

			if got := FrequencyForTimezone(tt.zone); got != tt.want {
				t.Errorf("FrequencyForTimezone(%q) = %v, want %v", tt.zone, got, tt.want)
			}
		})
	}
}

func TestFrequency(t *testing.T) {
	t.Parallel()

	if f := Frequency(); f != Hz50 && f != Hz60 {
		t.Errorf("Frequency() = %v, want 50 or 60", f)
	}
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode string
		want []float64
	}{
		{"50", []float64{50}},
		{"60", []float64{60}},
		{"both", []float64{50, 60}},
		{"BOTH", []float64{50, 60}},
		{"off", nil},
	}

	for _, tt := range tests {
		got, err := Candidates(tt.mode)
		if err != nil {
			t.Fatalf("Candidates(%q) error = %v", tt.mode, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Candidates(%q) = %v, want %v", tt.mode, got, tt.want)
		}
	}

	auto, err := Candidates("auto")
	if err != nil || len(auto) != 1 {
		t.Errorf("Candidates(auto) = %v, %v", auto, err)
	}

	if _, err := Candidates("70"); err == nil {
		t.Error("Candidates(70) expected an error")
	}
}
