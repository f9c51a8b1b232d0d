package handler

import (
	"context"
	"time"

	"github.com/ogurasousui/dwrecords/internal/adapters/grpc/records"
	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/ogurasousui/dwrecords/internal/core/ports"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ records.EmploymentServer = (*EmploymentGrpcHandler)(nil)

// EmploymentGrpcHandler は保存済みの記録を使わずに勤続計算を行う EmploymentService の実装です。
type EmploymentGrpcHandler struct {
	clock ports.Clock
}

// NewEmploymentGrpcHandler は EmploymentGrpcHandler を生成します。
func NewEmploymentGrpcHandler(clock ports.Clock) *EmploymentGrpcHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &EmploymentGrpcHandler{clock: clock}
}

// Compute は start_date, status, effective_date から勤続状況を計算します。
// reference_date を省略した場合は現在日付を基準にします。
func (h *EmploymentGrpcHandler) Compute(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}

	in := employment.Input{}
	if in.StartDate, err = r.str("start_date"); err != nil {
		return nil, err
	}
	if in.EffectiveDate, err = r.str("effective_date"); err != nil {
		return nil, err
	}
	parsed, err := r.status("status")
	if err != nil {
		return nil, err
	}
	if parsed != nil {
		in.Status = *parsed
	}

	reference, _, err := r.date("reference_date")
	if err != nil {
		return nil, err
	}
	in.ReferenceDate = h.referenceDate(reference)

	calc, err := employment.Compute(in)
	if err != nil {
		return nil, toStatusError(err)
	}

	days := employment.DisplayDaysWorked(calc)
	return newResponse(calculationFields(
		calc,
		employment.Classify(in.Status, calc.DaysWorked),
		days,
		employment.FormatDuration(days),
	))
}

// FormatDuration は日数を人が読める期間表記に変換します。
func (h *EmploymentGrpcHandler) FormatDuration(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}
	days, err := r.integer("days")
	if err != nil {
		return nil, err
	}

	return newResponse(map[string]any{"text": employment.FormatDuration(days)})
}

func (h *EmploymentGrpcHandler) referenceDate(explicit *time.Time) time.Time {
	if explicit != nil {
		return *explicit
	}
	return h.clock.Now()
}
