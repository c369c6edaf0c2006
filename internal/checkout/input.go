package checkout

import "strings"

func digits(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == max {
				break
			}
		}
	}
	return b.String()
}

// FormatCardNumber keeps the first 16 digits in groups of four, e.g. "4242 4242 4242 4242"
func FormatCardNumber(s string) string {
	d := digits(s, 16)
	var b strings.Builder
	for i := 0; i < len(d); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d[i:min(i+4, len(d))])
	}
	return b.String()
}

// FormatExpiry keeps four digits as MM/YY; the slash appears once a third digit is typed
func FormatExpiry(s string) string {
	d := digits(s, 4)
	if len(d) > 2 {
		return d[:2] + "/" + d[2:]
	}
	return d
}

// FormatCVV keeps up to four digits
func FormatCVV(s string) string {
	return digits(s, 4)
}
