package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	closingRepo := newPgxClosingRepository(dbPool)
	receivableRepo := newPgxReceivableRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ClosingRepo:    closingRepo,
		ReceivableRepo: receivableRepo,
	}
}
