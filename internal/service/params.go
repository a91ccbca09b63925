package service

import (
	"github.com/cyclohire/cyclohire/internal/config"
	"github.com/cyclohire/cyclohire/internal/domain/catalog"
	"github.com/cyclohire/cyclohire/internal/domain/contract"
	"github.com/cyclohire/cyclohire/internal/logger"
)

// ServiceParams bundles the dependencies shared by all services.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	ContractRepo contract.Repository
	CatalogRepo  catalog.Repository
}
