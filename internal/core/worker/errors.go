package worker

import (
	"errors"

	"github.com/ogurasousui/dwrecords/internal/core/paging"
)

var (
	ErrInvalidID             = errors.New("worker: invalid id")
	ErrInvalidAgencyID       = errors.New("worker: invalid agency id")
	ErrInvalidWorkerCode     = errors.New("worker: invalid worker code")
	ErrInvalidFullName       = errors.New("worker: invalid full name")
	ErrInvalidNationality    = errors.New("worker: invalid nationality")
	ErrInvalidStatus         = errors.New("worker: invalid status")
	ErrInvalidDateRange      = errors.New("worker: effective date precedes start date")
	ErrWorkerNotFound        = errors.New("worker: not found")
	ErrAgencyNotFound        = errors.New("worker: agency not found")
	ErrWorkerCodeExists      = errors.New("worker: worker code already exists")
	ErrMissingStartDate      = errors.New("worker: start date is required")
	ErrProbationNotCompleted = errors.New("worker: probation period not completed")
	// ErrEffectiveDateNotAllowed は在職中のステータスに効力発生日が指定された場合に返却されます。
	ErrEffectiveDateNotAllowed = errors.New("worker: effective date only applies to resigned or terminated workers")
	// ErrInvalidStatusTransition は試用期間中以外の労働者を正社員登用しようとした場合に返却されます。
	ErrInvalidStatusTransition = errors.New("worker: invalid status transition")

	ErrInvalidPageSize  = paging.ErrInvalidPageSize
	ErrInvalidPageToken = paging.ErrInvalidPageToken
)
