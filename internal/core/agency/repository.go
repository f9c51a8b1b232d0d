package agency

import "context"

// Repository は斡旋業者の永続化を行うインターフェースです。
type Repository interface {
	Create(ctx context.Context, agency *Agency) (*Agency, error)
	Update(ctx context.Context, agency *Agency) (*Agency, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Agency, error)
	FindByCode(ctx context.Context, code string) (*Agency, error)
	List(ctx context.Context, filter ListAgenciesFilter) ([]*Agency, string, error)
}

// ListAgenciesFilter は一覧取得時の検索条件を表します。
type ListAgenciesFilter struct {
	Limit  int
	Offset int
	Status *Status
}
