package phone

import "strings"

// Digits strips formatting and returns the 10-digit North American number.
// A leading country code 1 is accepted and dropped.
func Digits(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return "", false
	}
	return d, true
}

// Format renders a phone number as (NNN) NNN-NNNN. Input that is not a
// recognisable 10-digit number is returned trimmed but otherwise unchanged.
func Format(raw string) string {
	d, ok := Digits(raw)
	if !ok {
		return strings.TrimSpace(raw)
	}
	return "(" + d[0:3] + ") " + d[3:6] + "-" + d[6:]
}
