package utils

import "fmt"

// FormatMoney renders an amount of minor currency units as "123.45".
// Keeps consistent decimal formatting for currency fields.
func FormatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
