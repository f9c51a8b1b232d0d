package employment

import "fmt"

const (
	daysPerYear  = 365
	daysPerMonth = 30
)

// FormatDuration は日数を "1 year, 35 days" のような文字列に変換します。
func FormatDuration(days int) string {
	if days < 0 {
		days = 0
	}

	switch {
	case days == 0:
		return "0 days"
	case days == 1:
		return "1 day"
	case days >= daysPerYear:
		return withRemainder(days/daysPerYear, "year", days%daysPerYear)
	case days >= daysPerMonth:
		return withRemainder(days/daysPerMonth, "month", days%daysPerMonth)
	default:
		return fmt.Sprintf("%d days", days)
	}
}

func withRemainder(count int, unit string, remainder int) string {
	text := plural(count, unit)
	if remainder == 0 {
		return text
	}
	return text + ", " + plural(remainder, "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
