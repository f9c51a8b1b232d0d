package worker

import (
	"time"

	"github.com/ogurasousui/dwrecords/internal/core/employment"
)

// Worker は家事労働者の雇用記録です。
type Worker struct {
	ID                string
	AgencyID          string
	WorkerCode        string
	FullName          string
	Nationality       string
	PassportNumber    *string
	PassportExpiresAt *time.Time
	EmployerName      *string
	Status            employment.Status
	StartDate         *time.Time
	// EffectiveDate は退職・解雇の効力発生日です。
	EffectiveDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Agency        *AgencySnapshot
}

// AgencySnapshot は労働者に紐づく斡旋業者情報のスナップショットです。
type AgencySnapshot struct {
	ID     string
	Name   string
	Code   string
	Status string
}

// EmploymentStatusResult は雇用記録に対する勤続計算の結果です。
type EmploymentStatusResult struct {
	Worker          *Worker
	Calculation     employment.Calculation
	Presentation    employment.Presentation
	DisplayDays     int
	DisplayDuration string
}
