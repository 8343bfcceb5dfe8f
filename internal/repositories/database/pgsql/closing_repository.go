package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
	"github.com/topvistorias/cash_closing_app/internal/models"
	"github.com/topvistorias/cash_closing_app/internal/utils/mapping"
	"github.com/topvistorias/cash_closing_app/internal/utils/pagination"
)

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for closing and exit data.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepositoryWithTx {
	return &PgxClosingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxClosingRepository implements portsrepo.ClosingRepositoryWithTx
var _ portsrepo.ClosingRepositoryWithTx = (*PgxClosingRepository)(nil)

const closingColumns = `
	closing_id, closing_date, store_id, operator_name,
	common_entries, electronic_entries, calculated_totals,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveClosing inserts a new closing row. The entry maps and totals land in
// JSONB columns; child exit rows are written separately.
func (r *PgxClosingRepository) SaveClosing(ctx context.Context, closing domain.Closing) error {
	m := mapping.ToModelClosing(closing)
	query := `
		INSERT INTO closings (
			closing_id, closing_date, store_id, operator_name,
			common_entries, electronic_entries, calculated_totals,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClosingID,
		m.ClosingDate,
		m.StoreID,
		m.OperatorName,
		m.CommonEntries,
		m.ElectronicEntries,
		m.Totals,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert closing "+m.ClosingID, err)
	}
	return nil
}

// UpdateClosing rewrites a closing's mutable fields and its recomputed totals.
func (r *PgxClosingRepository) UpdateClosing(ctx context.Context, closing domain.Closing) error {
	m := mapping.ToModelClosing(closing)
	query := `
		UPDATE closings
		SET closing_date = $2,
		    operator_name = $3,
		    common_entries = $4,
		    electronic_entries = $5,
		    calculated_totals = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE closing_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ClosingID,
		m.ClosingDate,
		m.OperatorName,
		m.CommonEntries,
		m.ElectronicEntries,
		m.Totals,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update closing "+m.ClosingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("closing " + m.ClosingID + " not found for update")
	}
	return nil
}

// FindClosingByID retrieves a closing by its ID.
func (r *PgxClosingRepository) FindClosingByID(ctx context.Context, closingID string) (*domain.Closing, error) {
	query := `SELECT ` + closingColumns + ` FROM closings WHERE closing_id = $1;`

	var m models.Closing
	err := r.Pool.QueryRow(ctx, query, closingID).Scan(
		&m.ClosingID,
		&m.ClosingDate,
		&m.StoreID,
		&m.OperatorName,
		&m.CommonEntries,
		&m.ElectronicEntries,
		&m.Totals,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find closing by ID "+closingID, err)
	}

	d := mapping.ToDomainClosing(m)
	return &d, nil
}

// buildFilterClause renders the optional store/date conditions, starting the
// placeholder numbering at $1.
func buildFilterClause(filter portsrepo.ClosingListFilter) (string, []interface{}) {
	clause := "WHERE 1=1"
	args := []interface{}{}
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		clause += " AND store_id = $" + strconv.Itoa(len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		clause += " AND closing_date >= $" + strconv.Itoa(len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		clause += " AND closing_date <= $" + strconv.Itoa(len(args))
	}
	return clause, args
}

func scanClosingRows(rows pgx.Rows) ([]models.Closing, error) {
	defer rows.Close()
	closings := []models.Closing{}
	for rows.Next() {
		var m models.Closing
		err := rows.Scan(
			&m.ClosingID,
			&m.ClosingDate,
			&m.StoreID,
			&m.OperatorName,
			&m.CommonEntries,
			&m.ElectronicEntries,
			&m.Totals,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan closing row", err)
		}
		closings = append(closings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating closing rows", err)
	}
	return closings, nil
}

// ListClosings retrieves a paginated list of closings using token-based
// pagination, newest closing date first with created_at as the tie-breaker.
func (r *PgxClosingRepository) ListClosings(ctx context.Context, filter portsrepo.ClosingListFilter, limit int, nextToken *string) ([]domain.Closing, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + closingColumns + ` FROM closings`
	filterClause, args := buildFilterClause(filter)
	orderByClause := `ORDER BY closing_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += " AND (closing_date, created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query closings", err)
	}
	modelClosings, err := scanClosingRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	results := modelClosings
	if len(modelClosings) > limit {
		last := modelClosings[limit-1]
		newToken := pagination.EncodeToken(last.ClosingDate, last.CreatedAt)
		nextTokenVal = &newToken
		results = modelClosings[:limit]
	}

	domainClosings := make([]domain.Closing, len(results))
	for i, m := range results {
		domainClosings[i] = mapping.ToDomainClosing(m)
	}
	return domainClosings, nextTokenVal, nil
}

// FindClosings retrieves every closing matching the filter, without pagination.
func (r *PgxClosingRepository) FindClosings(ctx context.Context, filter portsrepo.ClosingListFilter) ([]domain.Closing, error) {
	baseQuery := `SELECT ` + closingColumns + ` FROM closings`
	filterClause, args := buildFilterClause(filter)
	query := baseQuery + " " + filterClause + " ORDER BY closing_date DESC, created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query closings", err)
	}
	modelClosings, err := scanClosingRows(rows)
	if err != nil {
		return nil, err
	}

	domainClosings := make([]domain.Closing, len(modelClosings))
	for i, m := range modelClosings {
		domainClosings[i] = mapping.ToDomainClosing(m)
	}
	return domainClosings, nil
}

// FindExitsByClosingID retrieves all operational exit rows owned by a closing.
func (r *PgxClosingRepository) FindExitsByClosingID(ctx context.Context, closingID string) ([]domain.OperationalExit, error) {
	query := `
		SELECT exit_id, closing_id, scope, name, amount, payment_date
		FROM operational_exits
		WHERE closing_id = $1
		ORDER BY payment_date, exit_id;
	`
	rows, err := r.Pool.Query(ctx, query, closingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query exits for closing "+closingID, err)
	}
	defer rows.Close()

	exits := []models.OperationalExit{}
	for rows.Next() {
		var m models.OperationalExit
		if err := rows.Scan(&m.ExitID, &m.ClosingID, &m.Scope, &m.Name, &m.Amount, &m.PaymentDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exit row for closing "+closingID, err)
		}
		exits = append(exits, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exit rows for closing "+closingID, err)
	}
	return mapping.ToDomainOperationalExitSlice(exits), nil
}

const insertExitQuery = `
	INSERT INTO operational_exits (exit_id, closing_id, scope, name, amount, payment_date)
	VALUES ($1, $2, $3, $4, $5, $6);
`

// InsertExits persists a batch of operational exit rows.
func (r *PgxClosingRepository) InsertExits(ctx context.Context, exits []domain.OperationalExit) error {
	if len(exits) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range exits {
		m := mapping.ToModelOperationalExit(e)
		batch.Queue(insertExitQuery, m.ExitID, m.ClosingID, m.Scope, m.Name, m.Amount, m.PaymentDate)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute exit insert batch", err)
	}
	return nil
}

// ReplaceExits swaps the full exit set of one scope for a closing inside a DB
// transaction, so callers never observe a mixed old/new or interim empty set.
func (r *PgxClosingRepository) ReplaceExits(ctx context.Context, closingID string, scope domain.ExitScope, exits []domain.OperationalExit) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	_, err = tx.Exec(ctx, `DELETE FROM operational_exits WHERE closing_id = $1 AND scope = $2;`, closingID, string(scope))
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete exits for closing "+closingID, err)
	}

	if len(exits) > 0 {
		batch := &pgx.Batch{}
		for _, e := range exits {
			m := mapping.ToModelOperationalExit(e)
			batch.Queue(insertExitQuery, m.ExitID, m.ClosingID, m.Scope, m.Name, m.Amount, m.PaymentDate)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to execute exit insert batch for closing "+closingID, err)
		}
	}

	return r.Commit(ctx, tx)
}
