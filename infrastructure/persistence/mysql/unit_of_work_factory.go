package mysql

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ordermanagement/domain/shared"
	"ordermanagement/infrastructure/persistence/retry"
)

// UnitOfWorkFactory hands out one UnitOfWork per use-case invocation.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	dispatcher  shared.EventDispatcher
	retryConfig retry.Config
	logger      *zap.Logger
}

// NewUnitOfWorkFactory creates the factory.
func NewUnitOfWorkFactory(db *gorm.DB, dispatcher shared.EventDispatcher, retryConfig retry.Config, logger *zap.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		dispatcher:  dispatcher,
		retryConfig: retryConfig,
		logger:      logger,
	}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db, f.dispatcher, f.logger)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
