package services

import (
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/ports"
	portsrepo "github.com/finbooks/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
)

// ContainerConfig carries the non-repository inputs the services need.
type ContainerConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// NewServiceContainer wires every service against the repository provider.
// The company service doubles as the authorizer for all tenant-scoped
// services.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, clock ports.Clock, cfg ContainerConfig) *portssvc.ServiceContainer {
	companySvc := NewCompanyService(repos.Company, clock)
	var authorizer portssvc.CompanyAuthorizerSvc = companySvc

	return &portssvc.ServiceContainer{
		Company:  companySvc,
		User:     NewUserService(repos.User, clock, cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer),
		Account:  NewAccountService(repos.Account, authorizer, clock),
		Journal:  NewJournalService(repos.Journal, repos.Account, repos.Company, authorizer, clock),
		Document: NewDocumentService(repos.Document, repos.Customer, repos.Vendor, authorizer, clock),
		Payment:  NewPaymentService(repos.Payment, repos.Document, repos.Customer, authorizer, clock),
		Budget:   NewBudgetService(repos.Budget, authorizer, clock),
		Customer: NewCustomerService(repos.Customer, authorizer, clock),
		Vendor:   NewVendorService(repos.Vendor, authorizer, clock),
	}
}
