package agency

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ogurasousui/dwrecords/internal/core/paging"
	"github.com/ogurasousui/dwrecords/internal/core/ports"
)

var codePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// UseCase は斡旋業者ユースケースの公開インターフェースです。
type UseCase interface {
	CreateAgency(ctx context.Context, in CreateAgencyInput) (*Agency, error)
	GetAgency(ctx context.Context, in GetAgencyInput) (*Agency, error)
	ListAgencies(ctx context.Context, in ListAgenciesInput) (*ListAgenciesResult, error)
	UpdateAgency(ctx context.Context, in UpdateAgencyInput) (*Agency, error)
	DeleteAgency(ctx context.Context, in DeleteAgencyInput) error
}

// Service は斡旋業者に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock ports.Clock
	tx    ports.TransactionManager
}

// NewService は Service を生成します。clock と tx は nil の場合に既定実装を使います。
func NewService(repo Repository, clock ports.Clock, tx ports.TransactionManager) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if tx == nil {
		tx = ports.NoopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

type CreateAgencyInput struct {
	Name          string
	Code          string
	LicenseNumber *string
}

// UpdateAgencyInput は部分更新の入力です。nil のフィールドは変更しません。
type UpdateAgencyInput struct {
	ID            string
	Name          *string
	Code          *string
	Status        *Status
	LicenseNumber *string
}

type DeleteAgencyInput struct {
	ID string
}

type GetAgencyInput struct {
	ID string
}

type ListAgenciesInput struct {
	PageSize  int
	PageToken string
	Status    *Status
}

type ListAgenciesResult struct {
	Agencies      []*Agency
	NextPageToken string
}

// CreateAgency は新しい斡旋業者を登録します。
func (s *Service) CreateAgency(ctx context.Context, in CreateAgencyInput) (*Agency, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	code, err := normalizeCode(in.Code)
	if err != nil {
		return nil, err
	}

	var created *Agency
	err = s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureCodeAvailable(txCtx, code); err != nil {
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Agency{
			Name:          name,
			Code:          code,
			Status:        StatusActive,
			LicenseNumber: normalizeOptional(in.LicenseNumber),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateAgency は斡旋業者情報を更新します。
func (s *Service) UpdateAgency(ctx context.Context, in UpdateAgencyInput) (*Agency, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}
	if in.Status != nil && !isValidStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	var updated *Agency
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.Name != nil {
			if existing.Name, err = normalizeName(*in.Name); err != nil {
				return err
			}
		}

		if in.Code != nil {
			code, err := normalizeCode(*in.Code)
			if err != nil {
				return err
			}
			if code != existing.Code {
				if err := s.ensureCodeAvailable(txCtx, code); err != nil {
					return err
				}
				existing.Code = code
			}
		}

		if in.Status != nil {
			existing.Status = *in.Status
		}

		if in.LicenseNumber != nil {
			existing.LicenseNumber = normalizeOptional(in.LicenseNumber)
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

// DeleteAgency は斡旋業者を削除します。
func (s *Service) DeleteAgency(ctx context.Context, in DeleteAgencyInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, in.ID)
	})
}

// GetAgency は ID で斡旋業者を取得します。
func (s *Service) GetAgency(ctx context.Context, in GetAgencyInput) (*Agency, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *Agency
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

// ListAgencies は斡旋業者の一覧を取得します。
func (s *Service) ListAgencies(ctx context.Context, in ListAgenciesInput) (*ListAgenciesResult, error) {
	limit, err := paging.Limit(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := paging.Offset(in.PageToken)
	if err != nil {
		return nil, err
	}

	if in.Status != nil && !isValidStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	result := &ListAgenciesResult{}
	err = s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		agencies, token, err := s.repo.List(txCtx, ListAgenciesFilter{
			Limit:  limit,
			Offset: offset,
			Status: in.Status,
		})
		if err != nil {
			return err
		}
		result.Agencies = agencies
		result.NextPageToken = token
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) ensureCodeAvailable(ctx context.Context, code string) error {
	found, err := s.repo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, ErrAgencyNotFound) {
		return err
	}
	if found != nil {
		return ErrCodeAlreadyExists
	}
	return nil
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return trimmed, nil
}

func normalizeCode(raw string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" || !codePattern.MatchString(lower) {
		return "", ErrInvalidCode
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

func isValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}
