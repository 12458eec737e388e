// Package brdoc formats Brazilian document and contact numbers for display.
package brdoc

import (
	"fmt"
	"strings"
	"unicode"
)

// digits strips every non-digit rune from s.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCNPJ renders a CNPJ as XX.XXX.XXX/XXXX-XX. Inputs that do not hold
// exactly 14 digits are returned unchanged.
func FormatCNPJ(cnpj string) string {
	d := digits(cnpj)
	if len(d) != 14 {
		return cnpj
	}
	return fmt.Sprintf("%s.%s.%s/%s-%s", d[:2], d[2:5], d[5:8], d[8:12], d[12:])
}

// FormatPhone renders a phone number as (XX) XXXXX-XXXX for 11 digits or
// (XX) XXXX-XXXX for 10. Anything else is returned unchanged.
func FormatPhone(phone string) string {
	d := digits(phone)
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	default:
		return phone
	}
}
