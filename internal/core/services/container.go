package services

import (
	portsrepo "github.com/branchsim/atm_backend/internal/core/ports/repositories"
	portssvc "github.com/branchsim/atm_backend/internal/core/ports/services"
)

// NewServiceContainer wires the core services onto one repository container.
func NewServiceContainer(repos *portsrepo.RepositoryContainer) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Authenticator: NewAuthenticatorService(repos.Account, repos.Transactor),
		Teller:        NewTellerService(repos.Account, repos.Transaction, repos.Transactor),
		History:       NewHistoryService(repos.Account, repos.Transaction),
	}
}
