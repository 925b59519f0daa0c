package publisher

import "context"

// Repository defines the contract for publishing company storage.
type Repository interface {
	Create(ctx context.Context, pc *PublishingCompany) error
	GetByName(ctx context.Context, name string) (PublishingCompany, error)
	List(ctx context.Context) ([]PublishingCompany, error)
	Search(ctx context.Context, q string) ([]PublishingCompany, error)
	Update(ctx context.Context, pc *PublishingCompany) error

	// Rename creates a record under the new name, re-points every book of
	// oldName to it and drops the old record, all in one transaction.
	Rename(ctx context.Context, oldName string, pc *PublishingCompany) error

	Delete(ctx context.Context, name string) error
	DeleteMany(ctx context.Context, names []string) error
}
