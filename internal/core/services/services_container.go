package services

import (
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/platform/config"
	"github.com/SscSPs/fin_manager_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// providerClient may be nil, in which case only the custom users table can sign users in.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, providerClient ProviderClient) *portssvc.ServiceContainer {
	passwords := utils.NewPasswordHasher(cfg.PasswordHashCost)
	return &portssvc.ServiceContainer{
		Session: NewSessionService(SessionServiceDeps{
			UserRepo:    repos.UserRepo,
			Revocations: repos.Revocations,
			Tokens: SessionTokenConfig{
				Secret: cfg.SessionSecret,
				Issuer: cfg.SessionIssuer,
				MaxAge: cfg.SessionMaxAge,
			},
			Passwords:       passwords,
			Provider:        providerClient,
			ProviderTimeout: cfg.AuthProviderTimeout,
			GoogleClientID:  cfg.GoogleClientID,
		}),
		User:        NewUserService(repos.UserRepo, passwords),
		Entity:      NewEntityService(repos.EntityRepo, repos.UnitRepo),
		Account:     NewAccountService(repos.AccountRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.UnitRepo),
		Transfer:    NewTransferService(repos.Ledger, cfg.TransferDefaultEntityID),
	}
}
