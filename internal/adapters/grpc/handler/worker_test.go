package handler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/types/known/structpb"
)

type stubWorkerUseCase struct {
	createInput worker.CreateWorkerInput
	createOut   *worker.Worker
	createErr   error

	getInput worker.GetWorkerInput
	getOut   *worker.Worker
	getErr   error

	listInput worker.ListWorkersInput
	listOut   *worker.ListWorkersResult
	listErr   error

	updateInput worker.UpdateWorkerInput
	updateOut   *worker.Worker
	updateErr   error

	deleteInput worker.DeleteWorkerInput
	deleteErr   error

	statusOut *worker.EmploymentStatusResult
	statusErr error

	reviewInput worker.ReviewProbationInput
	reviewOut   *worker.ReviewProbationResult
	reviewErr   error

	confirmInput worker.ConfirmPermanentInput
	confirmOut   *worker.Worker
	confirmErr   error
}

func (s *stubWorkerUseCase) CreateWorker(ctx context.Context, in worker.CreateWorkerInput) (*worker.Worker, error) {
	s.createInput = in
	return s.createOut, s.createErr
}

func (s *stubWorkerUseCase) GetWorker(ctx context.Context, in worker.GetWorkerInput) (*worker.Worker, error) {
	s.getInput = in
	return s.getOut, s.getErr
}

func (s *stubWorkerUseCase) ListWorkers(ctx context.Context, in worker.ListWorkersInput) (*worker.ListWorkersResult, error) {
	s.listInput = in
	return s.listOut, s.listErr
}

func (s *stubWorkerUseCase) UpdateWorker(ctx context.Context, in worker.UpdateWorkerInput) (*worker.Worker, error) {
	s.updateInput = in
	return s.updateOut, s.updateErr
}

func (s *stubWorkerUseCase) DeleteWorker(ctx context.Context, in worker.DeleteWorkerInput) error {
	s.deleteInput = in
	return s.deleteErr
}

func (s *stubWorkerUseCase) GetEmploymentStatus(ctx context.Context, in worker.GetWorkerInput) (*worker.EmploymentStatusResult, error) {
	s.getInput = in
	return s.statusOut, s.statusErr
}

func (s *stubWorkerUseCase) ReviewProbation(ctx context.Context, in worker.ReviewProbationInput) (*worker.ReviewProbationResult, error) {
	s.reviewInput = in
	return s.reviewOut, s.reviewErr
}

func (s *stubWorkerUseCase) ConfirmPermanent(ctx context.Context, in worker.ConfirmPermanentInput) (*worker.Worker, error) {
	s.confirmInput = in
	return s.confirmOut, s.confirmErr
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestWorkerGrpcHandler_CreateWorker(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{
		createOut: &worker.Worker{
			ID:         "worker-1",
			AgencyID:   "agency-1",
			WorkerCode: "dw-001",
			Status:     employment.StatusProbationary,
			StartDate:  date(2024, 1, 1),
			Agency:     &worker.AgencySnapshot{ID: "agency-1", Code: "gbm"},
		},
	}

	resp, err := NewWorkerGrpcHandler(stub).CreateWorker(context.Background(), mustStruct(t, map[string]any{
		"agency_id":   "agency-1",
		"worker_code": "DW-001",
		"full_name":   "Maria Santos",
		"nationality": "PH",
		"status":      "Probationary",
		"start_date":  "2024-01-01",
	}))
	if err != nil {
		t.Fatalf("CreateWorker returned error: %v", err)
	}

	in := stub.createInput
	if in.Status == nil || *in.Status != employment.StatusProbationary {
		t.Errorf("expected probationary status, got %+v", in.Status)
	}
	if in.StartDate == nil || !in.StartDate.Equal(*date(2024, 1, 1)) {
		t.Errorf("unexpected start date: %+v", in.StartDate)
	}
	if in.EffectiveDate != nil || in.PassportNumber != nil {
		t.Errorf("expected absent fields to stay nil: %+v", in)
	}

	w := resp.GetFields()["worker"].GetStructValue().GetFields()
	if w["start_date"].GetStringValue() != "2024-01-01" {
		t.Errorf("unexpected start_date: %v", w["start_date"])
	}
	if _, ok := w["effective_date"].GetKind().(*structpb.Value_NullValue); !ok {
		t.Errorf("expected null effective_date, got %v", w["effective_date"])
	}
	if w["agency"].GetStructValue().GetFields()["code"].GetStringValue() != "gbm" {
		t.Errorf("expected agency snapshot in response")
	}
}

func TestWorkerGrpcHandler_CreateWorker_InvalidInput(t *testing.T) {
	t.Parallel()

	cases := map[string]map[string]any{
		"malformed date": {"agency_id": "agency-1", "start_date": "01/02/2024"},
		"unknown status": {"agency_id": "agency-1", "status": "contract"},
		"numeric code":   {"agency_id": "agency-1", "worker_code": 7},
	}

	for name, fields := range cases {
		stub := &stubWorkerUseCase{}
		_, err := NewWorkerGrpcHandler(stub).CreateWorker(context.Background(), mustStruct(t, fields))
		if codeOf(err) != codes.InvalidArgument {
			t.Errorf("%s: expected InvalidArgument, got %v", name, err)
		}
	}
}

func TestWorkerGrpcHandler_UpdateWorker_DatePresence(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{updateOut: &worker.Worker{ID: "worker-1"}}

	_, err := NewWorkerGrpcHandler(stub).UpdateWorker(context.Background(), mustStruct(t, map[string]any{
		"id":                  "worker-1",
		"status":              "resigned",
		"effective_date":      "2024-03-01",
		"passport_expires_at": nil,
	}))
	if err != nil {
		t.Fatalf("UpdateWorker returned error: %v", err)
	}

	in := stub.updateInput
	if !in.EffectiveDateSet || in.EffectiveDate == nil {
		t.Errorf("expected effective date to be set: %+v", in)
	}
	if !in.PassportExpiresAtSet || in.PassportExpiresAt != nil {
		t.Errorf("expected passport expiry to be cleared: %+v", in)
	}
	if in.StartDateSet {
		t.Errorf("expected start date to be left untouched")
	}
	if in.FullName != nil {
		t.Errorf("expected full name to be left untouched")
	}
}

func TestWorkerGrpcHandler_GetEmploymentStatus(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	w := &worker.Worker{
		ID:            "worker-1",
		Status:        employment.StatusTerminated,
		StartDate:     date(2024, 1, 1),
		EffectiveDate: date(2024, 2, 15),
	}
	stub := &stubWorkerUseCase{statusOut: worker.Evaluate(w, now)}

	resp, err := NewWorkerGrpcHandler(stub).GetEmploymentStatus(context.Background(), mustStruct(t, map[string]any{"id": "worker-1"}))
	if err != nil {
		t.Fatalf("GetEmploymentStatus returned error: %v", err)
	}

	f := resp.GetFields()
	if f["days_worked"].GetNumberValue() != 45 {
		t.Errorf("expected 45 days worked, got %v", f["days_worked"])
	}
	if f["actual_days_worked"].GetNumberValue() != 45 {
		t.Errorf("expected actual_days_worked 45, got %v", f["actual_days_worked"])
	}
	if f["display_duration"].GetStringValue() != "1 month, 15 days" {
		t.Errorf("unexpected display_duration: %v", f["display_duration"])
	}
	if f["presentation"].GetStructValue().GetFields()["category"].GetStringValue() != string(employment.CategoryAdverse) {
		t.Errorf("unexpected presentation: %v", f["presentation"])
	}
	if stub.getInput.ID != "worker-1" {
		t.Errorf("expected id passed through, got %s", stub.getInput.ID)
	}
}

func TestWorkerGrpcHandler_GetEmploymentStatus_OmitsAbsentActualDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	w := &worker.Worker{ID: "worker-1", Status: employment.StatusProbationary, StartDate: date(2024, 1, 1)}
	stub := &stubWorkerUseCase{statusOut: worker.Evaluate(w, now)}

	resp, err := NewWorkerGrpcHandler(stub).GetEmploymentStatus(context.Background(), mustStruct(t, map[string]any{"id": "worker-1"}))
	if err != nil {
		t.Fatalf("GetEmploymentStatus returned error: %v", err)
	}

	if _, ok := resp.GetFields()["actual_days_worked"]; ok {
		t.Fatalf("actual_days_worked must be omitted when absent")
	}
	if !resp.GetFields()["is_eligible_for_permanent"].GetBoolValue() {
		t.Fatalf("expected eligibility after 100 days")
	}
}

func TestWorkerGrpcHandler_ReviewProbation(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]*worker.EmploymentStatusResult, 0, 2)
	for i, start := range []*time.Time{date(2023, 12, 1), date(2024, 3, 1)} {
		entries = append(entries, worker.Evaluate(&worker.Worker{
			ID:        fmt.Sprintf("worker-%d", i+1),
			Status:    employment.StatusProbationary,
			StartDate: start,
		}, now))
	}
	stub := &stubWorkerUseCase{reviewOut: &worker.ReviewProbationResult{Entries: entries, NextPageToken: "2"}}

	resp, err := NewWorkerGrpcHandler(stub).ReviewProbation(context.Background(), mustStruct(t, map[string]any{
		"agency_id": "agency-1",
		"page_size": 2,
	}))
	if err != nil {
		t.Fatalf("ReviewProbation returned error: %v", err)
	}

	if stub.reviewInput.AgencyID != "agency-1" || stub.reviewInput.PageSize != 2 {
		t.Errorf("unexpected review input: %+v", stub.reviewInput)
	}

	got := resp.GetFields()["entries"].GetListValue().GetValues()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	first := got[0].GetStructValue().GetFields()
	if first["worker"].GetStructValue().GetFields()["id"].GetStringValue() != "worker-1" {
		t.Errorf("expected entry order to be preserved")
	}
	if first["days_until_permanent"].GetNumberValue() != 0 {
		t.Errorf("expected overdue worker to need 0 days, got %v", first["days_until_permanent"])
	}
}

func TestWorkerGrpcHandler_ConfirmPermanent_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("10 days remaining: %w", worker.ErrProbationNotCompleted), codes.FailedPrecondition},
		{worker.ErrInvalidStatusTransition, codes.FailedPrecondition},
		{worker.ErrWorkerNotFound, codes.NotFound},
		{worker.ErrInvalidID, codes.InvalidArgument},
	}

	for _, tc := range cases {
		stub := &stubWorkerUseCase{confirmErr: tc.err}
		_, err := NewWorkerGrpcHandler(stub).ConfirmPermanent(context.Background(), mustStruct(t, map[string]any{"id": "worker-1"}))
		if codeOf(err) != tc.want {
			t.Errorf("ConfirmPermanent(%v): expected %s, got %v", tc.err, tc.want, err)
		}
	}
}

func TestWorkerGrpcHandler_ListWorkers_StatusFilter(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{listOut: &worker.ListWorkersResult{}}

	_, err := NewWorkerGrpcHandler(stub).ListWorkers(context.Background(), mustStruct(t, map[string]any{
		"agency_id": "agency-1",
		"status":    "permanent",
	}))
	if err != nil {
		t.Fatalf("ListWorkers returned error: %v", err)
	}

	if stub.listInput.Status == nil || *stub.listInput.Status != employment.StatusPermanent {
		t.Fatalf("expected permanent filter, got %+v", stub.listInput.Status)
	}
}

func TestWorkerGrpcHandler_DeleteWorker(t *testing.T) {
	t.Parallel()

	stub := &stubWorkerUseCase{}
	resp, err := NewWorkerGrpcHandler(stub).DeleteWorker(context.Background(), mustStruct(t, map[string]any{"id": "worker-9"}))
	if err != nil {
		t.Fatalf("DeleteWorker returned error: %v", err)
	}
	if len(resp.GetFields()) != 0 {
		t.Errorf("expected empty response, got %v", resp)
	}
	if stub.deleteInput.ID != "worker-9" {
		t.Errorf("expected id passed through, got %s", stub.deleteInput.ID)
	}
}
