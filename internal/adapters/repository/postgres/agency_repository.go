package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/dwrecords/internal/core/agency"
	"github.com/ogurasousui/dwrecords/internal/core/paging"
	pgdb "github.com/ogurasousui/dwrecords/internal/platform/db/postgres"
)

const agencyColumns = `id, name, code, status, license_number, created_at, updated_at`

// AgencyRepository は PostgreSQL を利用した斡旋業者永続化の実装です。
type AgencyRepository struct {
	pool pgdb.Queryer
}

// NewAgencyRepository は AgencyRepository を生成します。
func NewAgencyRepository(pool pgdb.Queryer) *AgencyRepository {
	return &AgencyRepository{pool: pool}
}

// Create は斡旋業者を新規登録します。
func (r *AgencyRepository) Create(ctx context.Context, a *agency.Agency) (*agency.Agency, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO agencies (name, code, status, license_number, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+agencyColumns,
		a.Name, a.Code, string(a.Status), nullableString(a.LicenseNumber), a.CreatedAt, a.UpdatedAt)

	created, err := scanAgency(row)
	if err != nil {
		return nil, translateAgencyPgError(err)
	}
	return created, nil
}

// Update は斡旋業者情報を更新します。
func (r *AgencyRepository) Update(ctx context.Context, a *agency.Agency) (*agency.Agency, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE agencies
           SET name = $1,
               code = $2,
               status = $3,
               license_number = $4,
               updated_at = $5
         WHERE id = $6
        RETURNING `+agencyColumns,
		a.Name, a.Code, string(a.Status), nullableString(a.LicenseNumber), a.UpdatedAt, a.ID)

	updated, err := scanAgency(row)
	if err != nil {
		return nil, translateAgencyPgError(err)
	}
	return updated, nil
}

// Delete は斡旋業者を削除します。
func (r *AgencyRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM agencies WHERE id = $1`, id)
	if err != nil {
		return translateAgencyPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return agency.ErrAgencyNotFound
	}
	return nil
}

// FindByID は ID で斡旋業者を取得します。
func (r *AgencyRepository) FindByID(ctx context.Context, id string) (*agency.Agency, error) {
	return r.findOne(ctx, "id", id)
}

// FindByCode はコードで斡旋業者を取得します。
func (r *AgencyRepository) FindByCode(ctx context.Context, code string) (*agency.Agency, error) {
	return r.findOne(ctx, "code", code)
}

func (r *AgencyRepository) findOne(ctx context.Context, column, value string) (*agency.Agency, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+agencyColumns+`
          FROM agencies
         WHERE `+column+` = $1
         LIMIT 1
    `, value)

	found, err := scanAgency(row)
	if err != nil {
		return nil, translateAgencyPgError(err)
	}
	return found, nil
}

// List は斡旋業者の一覧を取得します。
func (r *AgencyRepository) List(ctx context.Context, filter agency.ListAgenciesFilter) ([]*agency.Agency, string, error) {
	if filter.Limit <= 0 {
		return nil, "", agency.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", agency.ErrInvalidPageToken
	}

	args := make([]any, 0, 3)
	whereClause := ""
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		whereClause = " WHERE status = $1"
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Limit+1)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := `
        SELECT ` + agencyColumns + `
          FROM agencies` + whereClause + `
         ORDER BY created_at DESC, id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateAgencyPgError(err)
	}
	defer rows.Close()

	agencies := make([]*agency.Agency, 0, filter.Limit+1)
	for rows.Next() {
		found, err := scanAgency(rows)
		if err != nil {
			return nil, "", translateAgencyPgError(err)
		}
		agencies = append(agencies, found)
	}
	if err := rows.Err(); err != nil {
		return nil, "", translateAgencyPgError(err)
	}

	nextToken := paging.NextToken(len(agencies), filter.Limit, filter.Offset)
	if len(agencies) > filter.Limit {
		agencies = agencies[:filter.Limit]
	}

	return agencies, nextToken, nil
}

func scanAgency(row pgx.Row) (*agency.Agency, error) {
	var (
		id, name, code, status string
		license                sql.NullString
		createdAt, updatedAt   time.Time
	)

	if err := row.Scan(&id, &name, &code, &status, &license, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, agency.ErrAgencyNotFound
		}
		return nil, err
	}

	return &agency.Agency{
		ID:            id,
		Name:          name,
		Code:          code,
		Status:        agency.Status(status),
		LicenseNumber: stringPtr(license),
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func translateAgencyPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return agency.ErrAgencyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return agency.ErrCodeAlreadyExists
		case foreignKeyViolationCode:
			return agency.ErrAgencyInUse
		case invalidTextRepresentationCode:
			return agency.ErrInvalidID
		}
	}
	return err
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}
