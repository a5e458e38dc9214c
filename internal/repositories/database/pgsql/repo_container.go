package pgsql

import (
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	documentRepo := newPgxDocumentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:     documentRepo,
		DocumentRepo:  documentRepo,
		HistoryRepo:   newPgxHistoryRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		CatalogRepo:   newPgxCatalogRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
