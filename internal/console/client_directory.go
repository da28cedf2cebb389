package console

import (
	"context"
	"sync"

	"oneasy-portal/internal/listfilter"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/viewmode"
)

// Query narrows a directory view. Zero values match everything.
type Query struct {
	Search string
	Role   viewmode.Role
	Offset int
	Limit  int
}

// ClientDirectory fetches a user list once and filters it locally.
type ClientDirectory struct {
	fetch func(context.Context) ([]models.User, error)

	mu     sync.Mutex
	loaded bool
	users  []models.User
}

func NewClientDirectory(fetch func(context.Context) ([]models.User, error)) *ClientDirectory {
	return &ClientDirectory{fetch: fetch}
}

// Load fetches the list on first use. A failed fetch is retried by the next call.
func (d *ClientDirectory) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return nil
	}
	users, err := d.fetch(ctx)
	if err != nil {
		return err
	}
	d.users, d.loaded = users, true
	return nil
}

// Refresh drops the cached list and fetches again.
func (d *ClientDirectory) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.loaded = false
	d.mu.Unlock()
	return d.Load(ctx)
}

// View returns the matching users in fetch order and the match count before slicing.
func (d *ClientDirectory) View(q Query) ([]models.User, int) {
	d.mu.Lock()
	users := d.users
	d.mu.Unlock()

	matched := listfilter.Filter(users,
		listfilter.Contains(q.Search,
			func(u models.User) string { return u.Name },
			func(u models.User) string { return u.Email },
			func(u models.User) string { return u.Phone },
		),
		listfilter.Equals(q.Role, func(u models.User) viewmode.Role { return u.Role }),
	)
	return listfilter.Slice(matched, q.Offset, q.Limit), len(matched)
}
