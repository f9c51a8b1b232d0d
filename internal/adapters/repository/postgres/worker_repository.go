package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/ogurasousui/dwrecords/internal/core/paging"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
	pgdb "github.com/ogurasousui/dwrecords/internal/platform/db/postgres"
)

const (
	workerReturning = `id, agency_id, worker_code, full_name, nationality, passport_number, passport_expires_at,
                   employer_name, status, start_date, effective_date, created_at, updated_at`

	workerSelectTemplate = `
        SELECT {w}.id, {w}.agency_id, {w}.worker_code, {w}.full_name, {w}.nationality, {w}.passport_number,
               {w}.passport_expires_at, {w}.employer_name, {w}.status, {w}.start_date, {w}.effective_date,
               {w}.created_at, {w}.updated_at,
               a.id, a.name, a.code, a.status`

	workerAgencyForeignKey = "workers_agency_id_fkey"
)

// selectWorker は alias のテーブルと agencies(a) を結合した SELECT 句を返します。
func selectWorker(alias string) string {
	return strings.ReplaceAll(workerSelectTemplate, "{w}", alias)
}

// WorkerRepository は PostgreSQL を利用した雇用記録永続化の実装です。
type WorkerRepository struct {
	pool pgdb.Queryer
}

// NewWorkerRepository は WorkerRepository を生成します。
func NewWorkerRepository(pool pgdb.Queryer) *WorkerRepository {
	return &WorkerRepository{pool: pool}
}

// Create は雇用記録を新規作成します。
func (r *WorkerRepository) Create(ctx context.Context, w *worker.Worker) (*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH inserted AS (
            INSERT INTO workers (agency_id, worker_code, full_name, nationality, passport_number, passport_expires_at,
                                 employer_name, status, start_date, effective_date, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
            RETURNING `+workerReturning+`
        )`+selectWorker("i")+`
          FROM inserted i
          JOIN agencies a ON a.id = i.agency_id
    `,
		w.AgencyID,
		w.WorkerCode,
		w.FullName,
		w.Nationality,
		nullableString(w.PassportNumber),
		nullableDate(w.PassportExpiresAt),
		nullableString(w.EmployerName),
		string(w.Status),
		nullableDate(w.StartDate),
		nullableDate(w.EffectiveDate),
		w.CreatedAt,
		w.UpdatedAt,
	)

	created, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return created, nil
}

// Update は雇用記録を更新します。
func (r *WorkerRepository) Update(ctx context.Context, w *worker.Worker) (*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH updated AS (
            UPDATE workers
               SET worker_code = $1,
                   full_name = $2,
                   nationality = $3,
                   passport_number = $4,
                   passport_expires_at = $5,
                   employer_name = $6,
                   status = $7,
                   start_date = $8,
                   effective_date = $9,
                   updated_at = $10
             WHERE id = $11
            RETURNING `+workerReturning+`
        )`+selectWorker("u")+`
          FROM updated u
          JOIN agencies a ON a.id = u.agency_id
    `,
		w.WorkerCode,
		w.FullName,
		w.Nationality,
		nullableString(w.PassportNumber),
		nullableDate(w.PassportExpiresAt),
		nullableString(w.EmployerName),
		string(w.Status),
		nullableDate(w.StartDate),
		nullableDate(w.EffectiveDate),
		w.UpdatedAt,
		w.ID,
	)

	updated, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return updated, nil
}

// Delete は雇用記録を削除します。
func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return translateWorkerPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}

// FindByID は ID で雇用記録を取得します。
func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, selectWorker("w")+`
          FROM workers w
          JOIN agencies a ON a.id = w.agency_id
         WHERE w.id = $1
         LIMIT 1
    `, id)

	found, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return found, nil
}

// FindByAgencyAndCode は斡旋業者 ID と労働者コードで検索します。
func (r *WorkerRepository) FindByAgencyAndCode(ctx context.Context, agencyID, workerCode string) (*worker.Worker, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, selectWorker("w")+`
          FROM workers w
          JOIN agencies a ON a.id = w.agency_id
         WHERE w.agency_id = $1 AND w.worker_code = $2
         LIMIT 1
    `, agencyID, workerCode)

	found, err := scanWorker(row)
	if err != nil {
		return nil, translateWorkerPgError(err)
	}
	return found, nil
}

// List は雇用記録の一覧を取得します。
func (r *WorkerRepository) List(ctx context.Context, filter worker.ListWorkersFilter) ([]*worker.Worker, string, error) {
	if strings.TrimSpace(filter.AgencyID) == "" {
		return nil, "", worker.ErrInvalidAgencyID
	}
	if filter.Limit <= 0 {
		return nil, "", worker.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", worker.ErrInvalidPageToken
	}

	args := []any{filter.AgencyID}
	conditions := []string{"w.agency_id = $1"}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "w.status = $"+strconv.Itoa(len(args)))
	}

	args = append(args, filter.Limit+1)
	limitPlaceholder := "$" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetPlaceholder := "$" + strconv.Itoa(len(args))

	query := selectWorker("w") + `
          FROM workers w
          JOIN agencies a ON a.id = w.agency_id
         WHERE ` + strings.Join(conditions, " AND ") + `
         ORDER BY w.start_date ASC NULLS LAST, w.id ASC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateWorkerPgError(err)
	}
	defer rows.Close()

	workers := make([]*worker.Worker, 0, filter.Limit+1)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, "", translateWorkerPgError(err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, "", translateWorkerPgError(err)
	}

	nextToken := paging.NextToken(len(workers), filter.Limit, filter.Offset)
	if len(workers) > filter.Limit {
		workers = workers[:filter.Limit]
	}

	return workers, nextToken, nil
}

func scanWorker(row pgx.Row) (*worker.Worker, error) {
	var (
		w                 worker.Worker
		agency            worker.AgencySnapshot
		status            string
		passportNumber    sql.NullString
		passportExpiresAt sql.NullTime
		employerName      sql.NullString
		startDate         sql.NullTime
		effectiveDate     sql.NullTime
	)

	if err := row.Scan(
		&w.ID,
		&w.AgencyID,
		&w.WorkerCode,
		&w.FullName,
		&w.Nationality,
		&passportNumber,
		&passportExpiresAt,
		&employerName,
		&status,
		&startDate,
		&effectiveDate,
		&w.CreatedAt,
		&w.UpdatedAt,
		&agency.ID,
		&agency.Name,
		&agency.Code,
		&agency.Status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, worker.ErrWorkerNotFound
		}
		return nil, err
	}

	w.Status = employment.Status(status)
	w.PassportNumber = stringPtr(passportNumber)
	w.PassportExpiresAt = datePtr(passportExpiresAt)
	w.EmployerName = stringPtr(employerName)
	w.StartDate = datePtr(startDate)
	w.EffectiveDate = datePtr(effectiveDate)
	w.Agency = &agency

	return &w, nil
}

func translateWorkerPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return worker.ErrWorkerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return worker.ErrWorkerCodeExists
		case foreignKeyViolationCode:
			if pgErr.ConstraintName == "" || pgErr.ConstraintName == workerAgencyForeignKey {
				return worker.ErrAgencyNotFound
			}
		case checkViolationCode:
			return worker.ErrInvalidDateRange
		case invalidTextRepresentationCode:
			return worker.ErrInvalidID
		}
	}

	return err
}

func datePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

func nullableDate(value *time.Time) any {
	if value == nil {
		return nil
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
