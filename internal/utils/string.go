package utils

import (
	"strconv"
	"strings"
)

// FormatWithCommas renders n with thousands separators, e.g. 1234567 -> "1,234,567".
func FormatWithCommas(n int64) string {
	// magnitude as uint64 so math.MinInt64 does not overflow
	u := uint64(n)
	sign := ""
	if n < 0 {
		u = -u
		sign = "-"
	}
	digits := strconv.FormatUint(u, 10)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// CreateRankList numbers count already sorted rows, starting at 1.
func CreateRankList(count int) []int {
	if count <= 0 {
		return []int{}
	}
	ranks := make([]int, count)
	for i := range ranks {
		ranks[i] = i + 1
	}
	return ranks
}

// Plural picks singular or plural by n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
