package services

import (
	portsrepo "github.com/topvistorias/cash_closing_app/internal/core/ports/repositories"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize the receivable service first since the closing service
	// drives lifecycle transitions through it.
	container.Receivable = NewReceivableService(repos.ReceivableRepo)
	container.Closing = NewClosingService(repos.ClosingRepo, repos.ReceivableRepo, container.Receivable)
	container.Reporting = NewReportingService(repos.ClosingRepo, repos.ReceivableRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ClosingSvcFacade    = (*closingService)(nil)
	_ portssvc.ReceivableSvcFacade = (*receivableService)(nil)
	_ portssvc.ReportingService    = (*reportingService)(nil)
)
