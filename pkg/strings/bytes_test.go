package strings

import (
	"math"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		size     float64
		decimals int
		expected string
	}{
		{"zero", 0, 2, "0 Bytes"},
		{"negative", -5, 2, "0 Bytes"},
		{"NaN", math.NaN(), 2, "0 Bytes"},
		{"bytes", 500, 2, "500 Bytes"},
		{"one kilobyte", 1024, 2, "1 KB"},
		{"one and a half kilobytes", 1536, 2, "1.5 KB"},
		{"one megabyte", 1048576, 2, "1 MB"},
		{"rounded to two decimals", 1234567, 2, "1.18 MB"},
		{"zero decimals", 1536, 0, "2 KB"},
		{"gigabytes", 5 * 1024 * 1024 * 1024, 2, "5 GB"},
		{"clamped to largest unit", math.Pow(1024, 10), 2, "1048576 YB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatBytes(tt.size, tt.decimals)
			if result != tt.expected {
				t.Errorf("FormatBytes(%v, %d) = %q, want %q", tt.size, tt.decimals, result, tt.expected)
			}
		})
	}
}

func TestFormatBytesValue(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{"float", float64(2048), "2 KB"},
		{"int", 1024, "1 KB"},
		{"numeric string", "1536", "1.5 KB"},
		{"non numeric string", "abc", "0 Bytes"},
		{"nil", nil, "0 Bytes"},
		{"map", map[string]interface{}{}, "0 Bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytesValue(tt.input); got != tt.expected {
				t.Errorf("FormatBytesValue(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
