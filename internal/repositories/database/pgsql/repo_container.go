package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every PostgreSQL repository against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Company:  newPgxCompanyRepository(dbPool),
		User:     newPgxUserRepository(dbPool),
		Account:  newPgxAccountRepository(dbPool),
		Journal:  newPgxJournalRepository(dbPool),
		Document: newPgxDocumentRepository(dbPool),
		Payment:  newPgxPaymentRepository(dbPool),
		Budget:   newPgxBudgetRepository(dbPool),
		Customer: newPgxCustomerRepository(dbPool),
		Vendor:   newPgxVendorRepository(dbPool),
	}
}
