package handler

import (
	"context"

	"github.com/ogurasousui/dwrecords/internal/adapters/grpc/records"
	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ records.WorkerServer = (*WorkerGrpcHandler)(nil)

// WorkerGrpcHandler は WorkerService の gRPC 実装です。
type WorkerGrpcHandler struct {
	svc worker.UseCase
}

// NewWorkerGrpcHandler は WorkerGrpcHandler を生成します。
func NewWorkerGrpcHandler(svc worker.UseCase) *WorkerGrpcHandler {
	return &WorkerGrpcHandler{svc: svc}
}

// CreateWorker は雇用記録を作成します。
func (h *WorkerGrpcHandler) CreateWorker(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}

	in := worker.CreateWorkerInput{}
	if in.AgencyID, err = r.str("agency_id"); err != nil {
		return nil, err
	}
	if in.WorkerCode, err = r.str("worker_code"); err != nil {
		return nil, err
	}
	if in.FullName, err = r.str("full_name"); err != nil {
		return nil, err
	}
	if in.Nationality, err = r.str("nationality"); err != nil {
		return nil, err
	}
	if in.PassportNumber, err = r.optStr("passport_number"); err != nil {
		return nil, err
	}
	if in.EmployerName, err = r.optStr("employer_name"); err != nil {
		return nil, err
	}
	if in.Status, err = r.status("status"); err != nil {
		return nil, err
	}
	if in.PassportExpiresAt, _, err = r.date("passport_expires_at"); err != nil {
		return nil, err
	}
	if in.StartDate, _, err = r.date("start_date"); err != nil {
		return nil, err
	}
	if in.EffectiveDate, _, err = r.date("effective_date"); err != nil {
		return nil, err
	}

	created, err := h.svc.CreateWorker(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{"worker": workerFields(created)})
}

// GetWorker は雇用記録を取得します。
func (h *WorkerGrpcHandler) GetWorker(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(req)
	if err != nil {
		return nil, err
	}

	found, err := h.svc.GetWorker(ctx, worker.GetWorkerInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{"worker": workerFields(found)})
}

// ListWorkers は斡旋業者ごとの雇用記録を一覧します。
func (h *WorkerGrpcHandler) ListWorkers(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}

	in := worker.ListWorkersInput{}
	if in.AgencyID, err = r.str("agency_id"); err != nil {
		return nil, err
	}
	if in.PageSize, err = r.integer("page_size"); err != nil {
		return nil, err
	}
	if in.PageToken, err = r.str("page_token"); err != nil {
		return nil, err
	}
	if in.Status, err = r.status("status"); err != nil {
		return nil, err
	}

	result, err := h.svc.ListWorkers(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	workers := make([]any, 0, len(result.Workers))
	for _, w := range result.Workers {
		workers = append(workers, workerFields(w))
	}

	return newResponse(map[string]any{
		"workers":         workers,
		"next_page_token": result.NextPageToken,
	})
}

// UpdateWorker は雇用記録を部分更新します。
// 日付フィールドは null を指定すると削除されます。
func (h *WorkerGrpcHandler) UpdateWorker(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}

	in := worker.UpdateWorkerInput{}
	if in.ID, err = r.str("id"); err != nil {
		return nil, err
	}
	if in.WorkerCode, err = r.optStr("worker_code"); err != nil {
		return nil, err
	}
	if in.FullName, err = r.optStr("full_name"); err != nil {
		return nil, err
	}
	if in.Nationality, err = r.optStr("nationality"); err != nil {
		return nil, err
	}
	if in.PassportNumber, err = r.optStr("passport_number"); err != nil {
		return nil, err
	}
	if in.EmployerName, err = r.optStr("employer_name"); err != nil {
		return nil, err
	}
	if in.Status, err = r.status("status"); err != nil {
		return nil, err
	}
	if in.PassportExpiresAt, in.PassportExpiresAtSet, err = r.date("passport_expires_at"); err != nil {
		return nil, err
	}
	if in.StartDate, in.StartDateSet, err = r.date("start_date"); err != nil {
		return nil, err
	}
	if in.EffectiveDate, in.EffectiveDateSet, err = r.date("effective_date"); err != nil {
		return nil, err
	}

	updated, err := h.svc.UpdateWorker(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{"worker": workerFields(updated)})
}

// DeleteWorker は雇用記録を削除します。
func (h *WorkerGrpcHandler) DeleteWorker(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(req)
	if err != nil {
		return nil, err
	}

	if err := h.svc.DeleteWorker(ctx, worker.DeleteWorkerInput{ID: id}); err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{})
}

// GetEmploymentStatus は雇用記録の勤続日数と登用可否を返します。
func (h *WorkerGrpcHandler) GetEmploymentStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(req)
	if err != nil {
		return nil, err
	}

	result, err := h.svc.GetEmploymentStatus(ctx, worker.GetWorkerInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(statusResultFields(result))
}

// ReviewProbation は試用期間中の労働者を登用までの残日数順に返します。
func (h *WorkerGrpcHandler) ReviewProbation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r, err := newRequest(req)
	if err != nil {
		return nil, err
	}

	in := worker.ReviewProbationInput{}
	if in.AgencyID, err = r.str("agency_id"); err != nil {
		return nil, err
	}
	if in.PageSize, err = r.integer("page_size"); err != nil {
		return nil, err
	}
	if in.PageToken, err = r.str("page_token"); err != nil {
		return nil, err
	}

	result, err := h.svc.ReviewProbation(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	entries := make([]any, 0, len(result.Entries))
	for _, e := range result.Entries {
		entries = append(entries, statusResultFields(e))
	}

	return newResponse(map[string]any{
		"entries":         entries,
		"next_page_token": result.NextPageToken,
	})
}

// ConfirmPermanent は試用期間を満了した労働者を正社員に切り替えます。
func (h *WorkerGrpcHandler) ConfirmPermanent(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(req)
	if err != nil {
		return nil, err
	}

	confirmed, err := h.svc.ConfirmPermanent(ctx, worker.ConfirmPermanentInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newResponse(map[string]any{"worker": workerFields(confirmed)})
}

func requestID(req *structpb.Struct) (string, error) {
	r, err := newRequest(req)
	if err != nil {
		return "", err
	}
	return r.str("id")
}

func workerFields(w *worker.Worker) map[string]any {
	if w == nil {
		return nil
	}

	fields := map[string]any{
		"id":                  w.ID,
		"agency_id":           w.AgencyID,
		"worker_code":         w.WorkerCode,
		"full_name":           w.FullName,
		"nationality":         w.Nationality,
		"passport_number":     optionalString(w.PassportNumber),
		"passport_expires_at": formatDate(w.PassportExpiresAt),
		"employer_name":       optionalString(w.EmployerName),
		"status":              string(w.Status),
		"start_date":          formatDate(w.StartDate),
		"effective_date":      formatDate(w.EffectiveDate),
		"created_at":          formatTimestamp(w.CreatedAt),
		"updated_at":          formatTimestamp(w.UpdatedAt),
	}
	if w.Agency != nil {
		fields["agency"] = map[string]any{
			"id":     w.Agency.ID,
			"name":   w.Agency.Name,
			"code":   w.Agency.Code,
			"status": w.Agency.Status,
		}
	}
	return fields
}

func statusResultFields(r *worker.EmploymentStatusResult) map[string]any {
	fields := calculationFields(r.Calculation, r.Presentation, r.DisplayDays, r.DisplayDuration)
	fields["worker"] = workerFields(r.Worker)
	return fields
}

// calculationFields は計算結果を応答用に変換します。actual_days_worked は値がある場合のみ含めます。
func calculationFields(c employment.Calculation, p employment.Presentation, displayDays int, displayDuration string) map[string]any {
	fields := map[string]any{
		"days_worked":               c.DaysWorked,
		"should_be_permanent":       c.ShouldBePermanent,
		"days_until_permanent":      c.DaysUntilPermanent,
		"is_eligible_for_permanent": c.IsEligibleForPermanent,
		"is_resigned_or_terminated": c.IsResignedOrTerminated,
		"display_days":              displayDays,
		"display_duration":          displayDuration,
		"presentation": map[string]any{
			"category": string(p.Category),
			"label":    p.Label,
		},
	}
	if c.ActualDaysWorked != nil {
		fields["actual_days_worked"] = *c.ActualDaysWorked
	}
	return fields
}
