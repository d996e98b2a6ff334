package unitofwork

import "context"

// RepositoryFactory hands out a UnitOfWork per request scope.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
