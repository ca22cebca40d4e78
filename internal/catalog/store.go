package catalog

import "context"

// Patch is a partial product as received from the admin surface. Update
// merges it shallowly over the stored record: present fields overwrite,
// absent fields survive. Create ignores any "id" it carries.
type Patch map[string]any

// Store is the authoritative product collection.
//
// Point lookups return (zero, false, nil) when the id is absent; a
// non-nil error always means the store itself failed.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, bool, error)
	Create(ctx context.Context, p Patch) (Product, error)
	Update(ctx context.Context, id int, p Patch) (Product, bool, error)
	Delete(ctx context.Context, id int) (Product, bool, error)
	Ping(ctx context.Context) error
}
