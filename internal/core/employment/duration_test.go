package employment

import "testing"

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		-3:  "0 days",
		0:   "0 days",
		1:   "1 day",
		2:   "2 days",
		29:  "29 days",
		30:  "1 month",
		31:  "1 month, 1 day",
		90:  "3 months",
		100: "3 months, 10 days",
		364: "12 months, 4 days",
		365: "1 year",
		366: "1 year, 1 day",
		400: "1 year, 35 days",
		730: "2 years",
		800: "2 years, 70 days",
	}

	for days, want := range cases {
		if got := FormatDuration(days); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", days, got, want)
		}
	}
}
