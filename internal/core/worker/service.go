package worker

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/ogurasousui/dwrecords/internal/core/paging"
	"github.com/ogurasousui/dwrecords/internal/core/ports"
)

var workerCodePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// UseCase は雇用記録ユースケースの公開インターフェースです。
type UseCase interface {
	CreateWorker(ctx context.Context, in CreateWorkerInput) (*Worker, error)
	GetWorker(ctx context.Context, in GetWorkerInput) (*Worker, error)
	ListWorkers(ctx context.Context, in ListWorkersInput) (*ListWorkersResult, error)
	UpdateWorker(ctx context.Context, in UpdateWorkerInput) (*Worker, error)
	DeleteWorker(ctx context.Context, in DeleteWorkerInput) error
	GetEmploymentStatus(ctx context.Context, in GetWorkerInput) (*EmploymentStatusResult, error)
	ReviewProbation(ctx context.Context, in ReviewProbationInput) (*ReviewProbationResult, error)
	ConfirmPermanent(ctx context.Context, in ConfirmPermanentInput) (*Worker, error)
}

// Service は雇用記録に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock ports.Clock
	tx    ports.TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, clock ports.Clock, tx ports.TransactionManager) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if tx == nil {
		tx = ports.NoopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateWorkerInput は雇用記録作成時の入力です。Status が nil の場合は試用期間として登録します。
type CreateWorkerInput struct {
	AgencyID          string
	WorkerCode        string
	FullName          string
	Nationality       string
	PassportNumber    *string
	PassportExpiresAt *time.Time
	EmployerName      *string
	Status            *employment.Status
	StartDate         *time.Time
	EffectiveDate     *time.Time
}

// UpdateWorkerInput は雇用記録更新時の入力です。
// 日付は *Set が true の場合のみ反映し、値が nil なら削除します。
type UpdateWorkerInput struct {
	ID                   string
	WorkerCode           *string
	FullName             *string
	Nationality          *string
	PassportNumber       *string
	PassportExpiresAt    *time.Time
	PassportExpiresAtSet bool
	EmployerName         *string
	Status               *employment.Status
	StartDate            *time.Time
	StartDateSet         bool
	EffectiveDate        *time.Time
	EffectiveDateSet     bool
}

type GetWorkerInput struct {
	ID string
}

type DeleteWorkerInput struct {
	ID string
}

type ListWorkersInput struct {
	AgencyID  string
	PageSize  int
	PageToken string
	Status    *employment.Status
}

type ListWorkersResult struct {
	Workers       []*Worker
	NextPageToken string
}

type ReviewProbationInput struct {
	AgencyID  string
	PageSize  int
	PageToken string
}

// ReviewProbationResult は試用期間中の労働者を登用までの残日数が少ない順に並べたものです。
type ReviewProbationResult struct {
	Entries       []*EmploymentStatusResult
	NextPageToken string
}

type ConfirmPermanentInput struct {
	ID string
}

// CreateWorker は新しい雇用記録を作成します。
func (s *Service) CreateWorker(ctx context.Context, in CreateWorkerInput) (*Worker, error) {
	agencyID, err := requireTrimmed(in.AgencyID, ErrInvalidAgencyID)
	if err != nil {
		return nil, err
	}

	code, err := normalizeWorkerCode(in.WorkerCode)
	if err != nil {
		return nil, err
	}

	fullName, err := requireTrimmed(in.FullName, ErrInvalidFullName)
	if err != nil {
		return nil, err
	}

	nationality, err := requireTrimmed(in.Nationality, ErrInvalidNationality)
	if err != nil {
		return nil, err
	}

	status := employment.StatusProbationary
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	w := &Worker{
		AgencyID:          agencyID,
		WorkerCode:        code,
		FullName:          fullName,
		Nationality:       nationality,
		PassportNumber:    normalizeOptional(in.PassportNumber),
		PassportExpiresAt: normalizeDate(in.PassportExpiresAt),
		EmployerName:      normalizeOptional(in.EmployerName),
		Status:            status,
		StartDate:         normalizeDate(in.StartDate),
		EffectiveDate:     normalizeDate(in.EffectiveDate),
	}
	if err := validateEmploymentPeriod(w); err != nil {
		return nil, err
	}

	var created *Worker
	err = s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureWorkerCodeAvailable(txCtx, agencyID, code); err != nil {
			return err
		}

		now := s.clock.Now()
		w.CreatedAt = now
		w.UpdatedAt = now

		var err error
		created, err = s.repo.Create(txCtx, w)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateWorker は雇用記録を更新します。
func (s *Service) UpdateWorker(ctx context.Context, in UpdateWorkerInput) (*Worker, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	var updated *Worker
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.WorkerCode != nil {
			code, err := normalizeWorkerCode(*in.WorkerCode)
			if err != nil {
				return err
			}
			if code != existing.WorkerCode {
				if err := s.ensureWorkerCodeAvailable(txCtx, existing.AgencyID, code); err != nil {
					return err
				}
				existing.WorkerCode = code
			}
		}

		if in.FullName != nil {
			if existing.FullName, err = requireTrimmed(*in.FullName, ErrInvalidFullName); err != nil {
				return err
			}
		}

		if in.Nationality != nil {
			if existing.Nationality, err = requireTrimmed(*in.Nationality, ErrInvalidNationality); err != nil {
				return err
			}
		}

		if in.PassportNumber != nil {
			existing.PassportNumber = normalizeOptional(in.PassportNumber)
		}
		if in.PassportExpiresAtSet {
			existing.PassportExpiresAt = normalizeDate(in.PassportExpiresAt)
		}
		if in.EmployerName != nil {
			existing.EmployerName = normalizeOptional(in.EmployerName)
		}
		if in.Status != nil {
			existing.Status = *in.Status
		}
		if in.StartDateSet {
			existing.StartDate = normalizeDate(in.StartDate)
		}
		if in.EffectiveDateSet {
			existing.EffectiveDate = normalizeDate(in.EffectiveDate)
		}

		if err := validateEmploymentPeriod(existing); err != nil {
			return err
		}

		existing.UpdatedAt = s.clock.Now()

		updated, err = s.repo.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteWorker は雇用記録を削除します。
func (s *Service) DeleteWorker(ctx context.Context, in DeleteWorkerInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetWorker は雇用記録を取得します。
func (s *Service) GetWorker(ctx context.Context, in GetWorkerInput) (*Worker, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Worker
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		found, err = s.repo.FindByID(txCtx, in.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// ListWorkers は斡旋業者ごとの雇用記録一覧を取得します。
func (s *Service) ListWorkers(ctx context.Context, in ListWorkersInput) (*ListWorkersResult, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	workers, next, err := s.list(ctx, in.AgencyID, in.Status, in.PageSize, in.PageToken)
	if err != nil {
		return nil, err
	}

	return &ListWorkersResult{Workers: workers, NextPageToken: next}, nil
}

// GetEmploymentStatus は現在日付を基準に勤続日数と正社員登用可否を計算します。
func (s *Service) GetEmploymentStatus(ctx context.Context, in GetWorkerInput) (*EmploymentStatusResult, error) {
	w, err := s.GetWorker(ctx, in)
	if err != nil {
		return nil, err
	}
	return Evaluate(w, s.clock.Now()), nil
}

// ReviewProbation は試用期間中の労働者の登用状況を一覧します。
func (s *Service) ReviewProbation(ctx context.Context, in ReviewProbationInput) (*ReviewProbationResult, error) {
	probationary := employment.StatusProbationary
	workers, next, err := s.list(ctx, in.AgencyID, &probationary, in.PageSize, in.PageToken)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	entries := make([]*EmploymentStatusResult, 0, len(workers))
	for _, w := range workers {
		entries = append(entries, Evaluate(w, now))
	}

	slices.SortStableFunc(entries, func(a, b *EmploymentStatusResult) int {
		return a.Calculation.DaysUntilPermanent - b.Calculation.DaysUntilPermanent
	})

	return &ReviewProbationResult{Entries: entries, NextPageToken: next}, nil
}

// ConfirmPermanent は試用期間を満了した労働者を正社員に切り替えます。
func (s *Service) ConfirmPermanent(ctx context.Context, in ConfirmPermanentInput) (*Worker, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var confirmed *Worker
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if existing.Status != employment.StatusProbationary {
			return fmt.Errorf("%s -> %s: %w", existing.Status, employment.StatusPermanent, ErrInvalidStatusTransition)
		}
		if existing.StartDate == nil {
			return ErrMissingStartDate
		}

		now := s.clock.Now()
		calc := employment.ComputeDates(existing.StartDate, existing.Status, existing.EffectiveDate, now)
		if !calc.IsEligibleForPermanent {
			return fmt.Errorf("%d days remaining: %w", calc.DaysUntilPermanent, ErrProbationNotCompleted)
		}

		existing.Status = employment.StatusPermanent
		existing.UpdatedAt = now

		confirmed, err = s.repo.Update(txCtx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}

	return confirmed, nil
}

// Evaluate は雇用記録を now 基準で計算し、表示用の値をまとめます。
func Evaluate(w *Worker, now time.Time) *EmploymentStatusResult {
	calc := employment.ComputeDates(w.StartDate, w.Status, w.EffectiveDate, now)
	days := employment.DisplayDaysWorked(calc)

	return &EmploymentStatusResult{
		Worker:          w,
		Calculation:     calc,
		Presentation:    employment.Classify(w.Status, calc.DaysWorked),
		DisplayDays:     days,
		DisplayDuration: employment.FormatDuration(days),
	}
}

func (s *Service) list(ctx context.Context, rawAgencyID string, status *employment.Status, pageSize int, pageToken string) ([]*Worker, string, error) {
	agencyID, err := requireTrimmed(rawAgencyID, ErrInvalidAgencyID)
	if err != nil {
		return nil, "", err
	}

	limit, err := paging.Limit(pageSize)
	if err != nil {
		return nil, "", err
	}

	offset, err := paging.Offset(pageToken)
	if err != nil {
		return nil, "", err
	}

	var (
		workers []*Worker
		next    string
	)
	err = s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		workers, next, err = s.repo.List(txCtx, ListWorkersFilter{
			AgencyID: agencyID,
			Status:   status,
			Limit:    limit,
			Offset:   offset,
		})
		return err
	})
	if err != nil {
		return nil, "", err
	}

	return workers, next, nil
}

func (s *Service) ensureWorkerCodeAvailable(ctx context.Context, agencyID, code string) error {
	found, err := s.repo.FindByAgencyAndCode(ctx, agencyID, code)
	if err != nil && !errors.Is(err, ErrWorkerNotFound) {
		return err
	}
	if found != nil {
		return ErrWorkerCodeExists
	}
	return nil
}

func validateEmploymentPeriod(w *Worker) error {
	if w.EffectiveDate == nil {
		return nil
	}
	if !w.Status.IsSeparated() {
		return ErrEffectiveDateNotAllowed
	}
	if w.StartDate != nil && w.EffectiveDate.Before(*w.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func requireTrimmed(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid
	}
	return trimmed, nil
}

func normalizeWorkerCode(raw string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" || !workerCodePattern.MatchString(lower) {
		return "", ErrInvalidWorkerCode
	}
	return lower, nil
}

func normalizeOptional(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := employment.CalendarDate(*t)
	return &d
}
