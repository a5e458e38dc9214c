package services

import (
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/core/ports/storage"
	"github.com/SscSPs/docflow_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, files storage.FileStorage) *portssvc.ServiceContainer {
	clock := WithLocation(cfg.Location())

	container := &portssvc.ServiceContainer{}

	// The workflow engine writes its audit entries through the history service
	container.History = NewHistoryService(repos.HistoryRepo, clock)
	container.Workflow = NewWorkflowService(
		repos.TxManager,
		repos.DocumentRepo,
		repos.UserRepo,
		repos.CatalogRepo,
		container.History,
		files,
		clock,
	)

	container.Assistant = NewAssistantService(repos.DocumentRepo, repos.HistoryRepo, clock)
	container.Catalog = NewCatalogService(repos.CatalogRepo, repos.UserRepo, repos.DocumentRepo)
	container.User = NewUserService(repos.UserRepo, repos.CatalogRepo)
	container.TokenService = NewTokenService(cfg)
	container.Reporting = NewReportingService(repos.ReportingRepo, clock)

	return container
}
