package utils

import "testing"

func TestFormatBRL(t *testing.T) {
	cases := map[float64]string{
		0:          "R$ 0,00",
		1234.56:    "R$ 1.234,56",
		-99.9:      "-R$ 99,90",
		1000000:    "R$ 1.000.000,00",
		1200:       "R$ 1.200,00",
		0.05:       "R$ 0,05",
	}
	for in, want := range cases {
		if got := FormatBRL(in); got != want {
			t.Fatalf("FormatBRL(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestParseBRL(t *testing.T) {
	cases := map[string]float64{
		"R$ 1.234,56": 1234.56,
		"1234.56":     1234.56,
		"r$ 500":      500,
		"1.000,00":    1000,
	}
	for in, want := range cases {
		got, err := ParseBRL(in)
		if err != nil {
			t.Fatalf("ParseBRL(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseBRL(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseBRL("  "); err == nil {
		t.Fatalf("empty input should fail")
	}
}
