package employment

// Category はステータス表示の分類です。
type Category string

const (
	CategoryConfirmed   Category = "confirmed"
	CategoryNeutral     Category = "neutral"
	CategoryAdverse     Category = "adverse"
	CategoryReady       Category = "ready"
	CategoryApproaching Category = "approaching"
	CategoryEarly       Category = "early"
)

const approachingThresholdDays = 60

// Presentation は画面・帳票向けのステータス表示です。
type Presentation struct {
	Category Category
	Label    string
}

// Classify はステータスと勤続日数から表示分類を決定します。
func Classify(status Status, daysWorked int) Presentation {
	switch status {
	case StatusPermanent:
		return Presentation{Category: CategoryConfirmed, Label: "Permanent Employee"}
	case StatusResigned:
		return Presentation{Category: CategoryNeutral, Label: "Resigned"}
	case StatusTerminated:
		return Presentation{Category: CategoryAdverse, Label: "Terminated"}
	case StatusProbationary, "":
	}

	switch {
	case daysWorked >= ProbationPeriodDays:
		return Presentation{Category: CategoryReady, Label: "Eligible for Permanent"}
	case daysWorked >= approachingThresholdDays:
		return Presentation{Category: CategoryApproaching, Label: "Probationary"}
	default:
		return Presentation{Category: CategoryEarly, Label: "Probationary"}
	}
}
