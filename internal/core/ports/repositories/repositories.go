// Package repositories defines the persistence ports consumed by the core
// services. Interfaces are split into reader/writer facets; facades combine
// them for clients needing both.
package repositories

// RepositoryProvider bundles every repository implementation so wiring in
// main stays a single struct.
type RepositoryProvider struct {
	Company  CompanyRepositoryFacade
	User     UserRepositoryFacade
	Account  AccountRepositoryFacade
	Journal  JournalRepositoryFacade
	Document DocumentRepositoryFacade
	Payment  PaymentRepositoryFacade
	Budget   BudgetRepositoryFacade
	Customer CustomerRepositoryFacade
	Vendor   VendorRepositoryFacade
}
