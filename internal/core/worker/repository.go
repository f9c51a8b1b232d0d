package worker

import (
	"context"

	"github.com/ogurasousui/dwrecords/internal/core/employment"
)

// Repository は雇用記録の永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, worker *Worker) (*Worker, error)
	Update(ctx context.Context, worker *Worker) (*Worker, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Worker, error)
	FindByAgencyAndCode(ctx context.Context, agencyID, workerCode string) (*Worker, error)
	List(ctx context.Context, filter ListWorkersFilter) ([]*Worker, string, error)
}

// ListWorkersFilter は一覧取得用フィルタです。
type ListWorkersFilter struct {
	AgencyID string
	Status   *employment.Status
	Limit    int
	Offset   int
}
