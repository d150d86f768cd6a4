package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBRL renders an amount as Brazilian currency: R$ 1.234,56.
func FormatBRL(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(amount*100 + 0.5)
	whole := cents / 100
	frac := cents % 100
	return fmt.Sprintf("%sR$ %s,%02d", sign, formatThousand(whole), frac)
}

// ParseBRL parses "R$ 1.234,56" or "1234.56" into a float amount.
func ParseBRL(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "r$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid currency amount")
	}
	if strings.Contains(s, ",") {
		// pt-BR style: dots group thousands, comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = strings.ReplaceAll(s, " ", "")
	return strconv.ParseFloat(s, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
