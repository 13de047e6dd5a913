package subscription

import "context"

// Repository is the storage contract for monthly subscriptions. Delete and
// update target the stored ID when one is given; the (month, name) natural
// key remains as a first-match convenience.
type Repository interface {
	Append(ctx context.Context, sub *Subscription) error
	List(ctx context.Context) ([]*Subscription, error)
	ListMonth(ctx context.Context, month string) ([]*Subscription, error)
	FindByID(ctx context.Context, subID string) (*Subscription, error)

	// UpdateFirst rewrites the first row matching (month, oldName) with the
	// updated subscription, keeping the stored ID.
	UpdateFirst(ctx context.Context, month, oldName string, updated *Subscription) (bool, error)
	UpdateByID(ctx context.Context, subID string, updated *Subscription) (bool, error)

	DeleteFirst(ctx context.Context, month, name string) (bool, error)
	DeleteByID(ctx context.Context, subID string) (bool, error)
}
