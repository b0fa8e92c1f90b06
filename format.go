package graphz

import "fmt"

// FormatVolume prints a traded volume the short way: 1.23M, 45.6K or 999.
func FormatVolume(v int64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", float64(v)/1_000)
	default:
		return fmt.Sprint(v)
	}
}

// FormatPrice prints a simulated price with two decimals.
func FormatPrice(p float64) string {
	return M(p).String()
}
