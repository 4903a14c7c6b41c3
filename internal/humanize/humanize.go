// Package humanize is like dustin/go-humanize.
package humanize

import "fmt"

// Bytes is like dustin/go-humanize.Bytes but uses SI prefixes and
// always prints two decimal digits above one kilobyte.
func Bytes(value int64) string {
	if value < 1e03 {
		return fmt.Sprintf("%d B", value)
	}
	reduced, prefix := reduce(float64(value))
	return fmt.Sprintf("%.2f %sB", reduced, prefix)
}

// reduce reduces value to a base value and a unit prefix. For
// example, reduce(1055) returns (1.055, "k").
func reduce(value float64) (float64, string) {
	if value < 1e03 {
		return value, ""
	}
	value /= 1e03
	if value < 1e03 {
		return value, "k"
	}
	value /= 1e03
	if value < 1e03 {
		return value, "M"
	}
	value /= 1e03
	return value, "G"
}
