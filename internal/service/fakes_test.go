package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/users-service/internal/auth"
	"github.com/spec-kit/users-service/internal/domain"
	"github.com/spec-kit/users-service/internal/events"
	"github.com/spec-kit/users-service/internal/repository"
)

// calls counts repository method invocations by name.
type calls struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *calls) hit(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[name]++
}

func (c *calls) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

func (c *calls) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

type fakeUserRepo struct {
	calls
	users  map[int64]domain.User
	nextID int64
	err    error
}

func newFakeUserRepo(seed ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]domain.User{}}
	for _, u := range seed {
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.hit("Save")
	if r.err != nil {
		return nil, r.err
	}
	saved := *user
	if saved.ID == 0 {
		r.nextID++
		saved.ID = r.nextID
	}
	r.users[saved.ID] = saved
	out := saved
	return &out, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.hit("ExistsByEmail")
	if r.err != nil {
		return false, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.hit("FindByID")
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.hit("FindByEmail")
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.hit("FindByRole")
	if r.err != nil {
		return nil, r.err
	}
	result := []domain.User{}
	for _, u := range r.users {
		if u.Role == role {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, id int64) error {
	r.hit("DeleteByID")
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakePassengerRepo struct {
	calls
	passengers map[int64]domain.Passenger
	nextID     int64
	err        error
}

func newFakePassengerRepo(seed ...domain.Passenger) *fakePassengerRepo {
	r := &fakePassengerRepo{passengers: map[int64]domain.Passenger{}}
	for _, p := range seed {
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.passengers[p.ID] = p
	}
	return r
}

func (r *fakePassengerRepo) Save(_ context.Context, passenger *domain.Passenger) (*domain.Passenger, error) {
	r.hit("Save")
	if r.err != nil {
		return nil, r.err
	}
	saved := *passenger
	if saved.ID == 0 {
		r.nextID++
		saved.ID = r.nextID
	}
	r.passengers[saved.ID] = saved
	out := saved
	return &out, nil
}

func (r *fakePassengerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.hit("ExistsByEmail")
	if r.err != nil {
		return false, r.err
	}
	for _, p := range r.passengers {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePassengerRepo) FindByID(_ context.Context, id int64) (*domain.Passenger, error) {
	r.hit("FindByID")
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.passengers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePassengerRepo) FindByEmail(_ context.Context, email string) (*domain.Passenger, error) {
	r.hit("FindByEmail")
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.passengers {
		if p.Email == email {
			out := p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePassengerRepo) Count(_ context.Context) (int64, error) {
	r.hit("Count")
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.passengers)), nil
}

type notification struct {
	id                    int64
	email, name, password string
}

type fakeNotifier struct {
	sent []notification
	err  error
}

func (n *fakeNotifier) NotifyAccountCreated(_ context.Context, accountID int64, email, displayName, plaintextPassword string) error {
	n.sent = append(n.sent, notification{accountID, email, displayName, plaintextPassword})
	return n.err
}

type panickyNotifier struct{}

func (panickyNotifier) NotifyAccountCreated(context.Context, int64, string, string, string) error {
	panic("smtp exploded")
}

type fakePublisher struct {
	published []events.Event
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

var errStoreDown = errors.New("connection refused")

func testHasher() auth.Hasher {
	return auth.NewBcryptHasher(bcrypt.MinCost)
}

func mustHash(password string) string {
	hash, err := testHasher().Encode(password)
	if err != nil {
		panic(err)
	}
	return hash
}
