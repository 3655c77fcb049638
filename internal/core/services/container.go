package services

import (
	"github.com/ledgerbooks/bookkeeping_core/internal/core/domain"
	portsrepo "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/repositories"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies. The accounting standard and default currency come from
// configuration and apply to every company served by this instance.
func NewContainer(repos *portsrepo.RepositoryProvider, standard domain.Standard, defaultCurrency string) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo, standard, defaultCurrency),
		Journal:   NewJournalService(repos.JournalRepo),
		Entry:     NewEntryService(repos.EntryRepo, repos.JournalRepo, repos.AccountRepo, defaultCurrency),
		Reporting: NewReportingService(repos.ReportingRepo),
		Import:    NewImportService(repos.EntryRepo, repos.JournalRepo, repos.AccountRepo, standard, defaultCurrency),
		SEPA:      NewSEPAService(),
	}
}
