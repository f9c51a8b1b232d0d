package employment

import (
	"fmt"
	"strings"
	"time"
)

const (
	// ProbationPeriodDays は正社員登用の対象となる試用期間の日数です。
	ProbationPeriodDays = 90
	// DateLayout は日付文字列のレイアウトです。
	DateLayout = "2006-01-02"

	day = 24 * time.Hour
)

// Calculation は勤続日数と正社員登用可否の計算結果です。
type Calculation struct {
	DaysWorked             int
	ShouldBePermanent      bool
	DaysUntilPermanent     int
	IsEligibleForPermanent bool
	// ActualDaysWorked は退職・解雇済みで効力発生日が分かる場合のみ設定されます。
	ActualDaysWorked       *int
	IsResignedOrTerminated bool
}

// Input は文字列ベースの計算入力です。
type Input struct {
	StartDate     string
	Status        Status
	EffectiveDate string
	// ReferenceDate は在職中の場合の基準日です。通常は呼び出し側の現在日付を渡します。
	ReferenceDate time.Time
}

// Compute は入力文字列を解釈して雇用状況を計算します。
func Compute(in Input) (Calculation, error) {
	if in.Status != "" && !in.Status.Valid() {
		return Calculation{}, ErrInvalidStatus
	}

	start, err := ParseDate(in.StartDate)
	if err != nil {
		return Calculation{}, fmt.Errorf("start_date: %w", err)
	}

	var effective *time.Time
	if in.Status.IsSeparated() {
		effective, err = ParseDate(in.EffectiveDate)
		if err != nil {
			return Calculation{}, fmt.Errorf("effective_date: %w", err)
		}
	}

	return ComputeDates(start, in.Status, effective, in.ReferenceDate), nil
}

// ComputeDates は解釈済みの日付から雇用状況を計算します。
// start が nil の場合は初期状態を返します。
func ComputeDates(start *time.Time, status Status, effective *time.Time, reference time.Time) Calculation {
	if start == nil {
		return Calculation{DaysUntilPermanent: ProbationPeriodDays}
	}

	calc := Calculation{IsResignedOrTerminated: status.IsSeparated()}

	ref := reference
	if calc.IsResignedOrTerminated && effective != nil {
		ref = *effective
		actual := daysBetween(*start, ref)
		calc.ActualDaysWorked = &actual
	}

	calc.DaysWorked = daysBetween(*start, ref)
	calc.ShouldBePermanent = calc.DaysWorked >= ProbationPeriodDays
	calc.IsEligibleForPermanent = calc.ShouldBePermanent
	calc.DaysUntilPermanent = max(0, ProbationPeriodDays-calc.DaysWorked)

	return calc
}

// DisplayDaysWorked は表示用の勤続日数を返します。
func DisplayDaysWorked(c Calculation) int {
	if c.ActualDaysWorked != nil {
		return *c.ActualDaysWorked
	}
	return c.DaysWorked
}

// ParseDate は YYYY-MM-DD 形式の日付を UTC の 0 時として解釈します。空文字列は nil を返します。
func ParseDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, trimmed, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// CalendarDate は時刻のロケーションにおける暦日を UTC の 0 時で返します。
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	diff := CalendarDate(to).Sub(CalendarDate(from))
	if diff <= 0 {
		return 0
	}
	return int(diff / day)
}
