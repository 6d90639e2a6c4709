package services

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatUSD formats amount as US dollars with thousands separators and
// exactly two decimal places, e.g. $1,375.00.
func FormatUSD(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// FormatFileSize renders an attachment size for listings, e.g. 1.2 MB.
func FormatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
