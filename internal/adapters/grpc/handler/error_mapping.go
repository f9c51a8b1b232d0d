package handler

import (
	"errors"

	"github.com/ogurasousui/dwrecords/internal/core/agency"
	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, employment.ErrInvalidDate),
		errors.Is(err, employment.ErrInvalidStatus),
		errors.Is(err, agency.ErrInvalidName),
		errors.Is(err, agency.ErrInvalidCode),
		errors.Is(err, agency.ErrInvalidStatus),
		errors.Is(err, agency.ErrInvalidID),
		errors.Is(err, agency.ErrInvalidPageSize),
		errors.Is(err, agency.ErrInvalidPageToken),
		errors.Is(err, worker.ErrInvalidID),
		errors.Is(err, worker.ErrInvalidAgencyID),
		errors.Is(err, worker.ErrInvalidWorkerCode),
		errors.Is(err, worker.ErrInvalidFullName),
		errors.Is(err, worker.ErrInvalidNationality),
		errors.Is(err, worker.ErrInvalidStatus),
		errors.Is(err, worker.ErrInvalidDateRange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, agency.ErrCodeAlreadyExists),
		errors.Is(err, worker.ErrWorkerCodeExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, agency.ErrAgencyNotFound),
		errors.Is(err, worker.ErrWorkerNotFound),
		errors.Is(err, worker.ErrAgencyNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, agency.ErrAgencyInUse),
		errors.Is(err, worker.ErrEffectiveDateNotAllowed),
		errors.Is(err, worker.ErrMissingStartDate),
		errors.Is(err, worker.ErrProbationNotCompleted),
		errors.Is(err, worker.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
