package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	"github.com/topvistorias/cash_closing_app/internal/core/domain"
	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
	"github.com/topvistorias/cash_closing_app/internal/models"
	"github.com/topvistorias/cash_closing_app/internal/utils/mapping"
)

type PgxReceivableRepository struct {
	BaseRepository
}

// newPgxReceivableRepository creates a new repository for receivable and payment data.
func newPgxReceivableRepository(pool *pgxpool.Pool) portsrepo.ReceivableRepositoryFacade {
	return &PgxReceivableRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReceivableRepository implements portsrepo.ReceivableRepositoryFacade
var _ portsrepo.ReceivableRepositoryFacade = (*PgxReceivableRepository)(nil)

const receivableColumns = `
	receivable_id, store_id, client_name, reference, amount, debit_date, status,
	origin_closing_id, payment_closing_id, effective_payment_date,
	writeoff_date, written_off_by,
	created_at, created_by, last_updated_at, last_updated_by`

func scanReceivable(row pgx.Row) (models.Receivable, error) {
	var m models.Receivable
	err := row.Scan(
		&m.ReceivableID,
		&m.StoreID,
		&m.ClientName,
		&m.Reference,
		&m.Amount,
		&m.DebitDate,
		&m.Status,
		&m.OriginClosingID,
		&m.PaymentClosingID,
		&m.EffectivePaymentDate,
		&m.WriteoffDate,
		&m.WrittenOffBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanReceivableRows(rows pgx.Rows) ([]models.Receivable, error) {
	defer rows.Close()
	receivables := []models.Receivable{}
	for rows.Next() {
		m, err := scanReceivable(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan receivable row", err)
		}
		receivables = append(receivables, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating receivable rows", err)
	}
	return receivables, nil
}

// SaveReceivables persists a batch of new receivables.
func (r *PgxReceivableRepository) SaveReceivables(ctx context.Context, receivables []domain.Receivable) error {
	if len(receivables) == 0 {
		return nil
	}
	query := `
		INSERT INTO receivables (
			receivable_id, store_id, client_name, reference, amount, debit_date, status,
			origin_closing_id, payment_closing_id, effective_payment_date,
			writeoff_date, written_off_by,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, d := range receivables {
		m := mapping.ToModelReceivable(d)
		batch.Queue(query,
			m.ReceivableID,
			m.StoreID,
			m.ClientName,
			m.Reference,
			m.Amount,
			m.DebitDate,
			m.Status,
			m.OriginClosingID,
			m.PaymentClosingID,
			m.EffectivePaymentDate,
			m.WriteoffDate,
			m.WrittenOffBy,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute receivable insert batch", err)
	}
	return nil
}

// FindReceivableByID retrieves a receivable by its ID.
func (r *PgxReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE receivable_id = $1;`
	m, err := scanReceivable(r.Pool.QueryRow(ctx, query, receivableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find receivable by ID "+receivableID, err)
	}
	d := mapping.ToDomainReceivable(m)
	return &d, nil
}

// ListReceivables retrieves receivables matching the filter, newest debit date first.
func (r *PgxReceivableRepository) ListReceivables(ctx context.Context, filter portsrepo.ReceivableListFilter) ([]domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE 1=1`
	args := []interface{}{}
	if filter.StoreID != "" {
		args = append(args, filter.StoreID)
		query += " AND store_id = $" + strconv.Itoa(len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY debit_date DESC, created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query receivables", err)
	}
	modelReceivables, err := scanReceivableRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainReceivableSlice(modelReceivables), nil
}

// ListPendingByStore retrieves a store's currently pending receivables.
func (r *PgxReceivableRepository) ListPendingByStore(ctx context.Context, storeID string) ([]domain.Receivable, error) {
	return r.ListReceivables(ctx, portsrepo.ReceivableListFilter{
		StoreID: storeID,
		Status:  domain.ReceivablePending,
	})
}

// SumPendingByStore returns the outstanding pending total per store id.
// This is a live figure: it reflects the receivable states as of now, not as
// of any report date.
func (r *PgxReceivableRepository) SumPendingByStore(ctx context.Context) (map[string]decimal.Decimal, error) {
	query := `
		SELECT store_id, COALESCE(SUM(amount), 0)
		FROM receivables
		WHERE status = $1
		GROUP BY store_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.ReceivablePending))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending receivable totals", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var storeID string
		var total decimal.Decimal
		if err := rows.Scan(&storeID, &total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pending total row", err)
		}
		totals[storeID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pending total rows", err)
	}
	return totals, nil
}

// FindReceivablesByOriginClosing retrieves the receivables a closing created.
func (r *PgxReceivableRepository) FindReceivablesByOriginClosing(ctx context.Context, closingID string) ([]domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE origin_closing_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, closingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query receivables for closing "+closingID, err)
	}
	modelReceivables, err := scanReceivableRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainReceivableSlice(modelReceivables), nil
}

// InsertReceivedPayments persists a batch of settlement records.
func (r *PgxReceivableRepository) InsertReceivedPayments(ctx context.Context, payments []domain.ReceivedPayment) error {
	if len(payments) == 0 {
		return nil
	}
	query := `
		INSERT INTO received_payments (
			payment_id, closing_id, receivable_id, client_name, amount_received,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, d := range payments {
		m := mapping.ToModelReceivedPayment(d)
		batch.Queue(query,
			m.PaymentID,
			m.ClosingID,
			m.ReceivableID,
			m.ClientName,
			m.AmountReceived,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute payment insert batch", err)
	}
	return nil
}

// FindPaymentsByClosingID retrieves the settlement records a closing made.
func (r *PgxReceivableRepository) FindPaymentsByClosingID(ctx context.Context, closingID string) ([]domain.ReceivedPayment, error) {
	query := `
		SELECT payment_id, closing_id, receivable_id, client_name, amount_received,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM received_payments
		WHERE closing_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, closingID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for closing "+closingID, err)
	}
	defer rows.Close()

	payments := []models.ReceivedPayment{}
	for rows.Next() {
		var m models.ReceivedPayment
		err := rows.Scan(
			&m.PaymentID,
			&m.ClosingID,
			&m.ReceivableID,
			&m.ClientName,
			&m.AmountReceived,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row for closing "+closingID, err)
		}
		payments = append(payments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows for closing "+closingID, err)
	}
	return mapping.ToDomainReceivedPaymentSlice(payments), nil
}

// UpdateReceivableStatus transitions a receivable between lifecycle states as
// a single conditional update. The WHERE clause pins the prior status, so a
// row that already moved on is simply not matched: two racing transitions can
// never both succeed.
func (r *PgxReceivableRepository) UpdateReceivableStatus(ctx context.Context, receivableID string, fromStatus, toStatus domain.ReceivableStatus, fields portsrepo.ReceivableStatusUpdate) error {
	query := `
		UPDATE receivables
		SET status = $3,
		    payment_closing_id = COALESCE($4, payment_closing_id),
		    effective_payment_date = COALESCE($5, effective_payment_date),
		    writeoff_date = COALESCE($6, writeoff_date),
		    written_off_by = COALESCE($7, written_off_by),
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE receivable_id = $1 AND status = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		receivableID,
		string(fromStatus),
		string(toStatus),
		fields.PaymentClosingID,
		fields.EffectivePaymentDate,
		fields.WriteoffDate,
		fields.WrittenOffBy,
		fields.UpdatedAt,
		fields.UpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of receivable "+receivableID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either the receivable does not exist or it is no longer in
		// fromStatus. Callers treat both as a failed transition.
		return apperrors.NewAppError(409, "receivable "+receivableID+" not in status "+string(fromStatus), apperrors.ErrConflict)
	}
	return nil
}
