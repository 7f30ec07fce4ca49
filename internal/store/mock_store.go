// ABOUTME: Mock Store implementation for testing
// ABOUTME: In-memory owners/posts with per-method error injection

package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu         sync.RWMutex
	owners     map[string]*Owner // keyed by owner ID
	ownerOrder []string
	posts      map[string]*Post // keyed by post ID
	postOrder  []string
	nextID     int
	failures   map[string]error // keyed by method name
}

// Ensure MockStore implements Store.
var _ Store = (*MockStore)(nil)

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		owners:   make(map[string]*Owner),
		posts:    make(map[string]*Post),
		failures: make(map[string]error),
	}
}

// FailOn makes every later call to the named method return err.
// Passing a nil error clears the failure.
func (m *MockStore) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, method)
		return
	}
	m.failures[method] = err
}

func (m *MockStore) failure(method string) error {
	return m.failures[method]
}

// newID returns a deterministic UUID-shaped identifier.
func (m *MockStore) newID() string {
	m.nextID++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", m.nextID)
}

// CreateOwner stores a new owner, enforcing username uniqueness.
func (m *MockStore) CreateOwner(ctx context.Context, owner *Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("CreateOwner"); err != nil {
		return err
	}
	for _, o := range m.owners {
		if o.Username == owner.Username {
			return ErrDuplicateKey
		}
	}

	owner.ID = m.newID()
	if owner.PostIDs == nil {
		owner.PostIDs = []string{}
	}
	if owner.CreatedAt.IsZero() {
		owner.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	m.owners[owner.ID] = copyOwner(owner)
	m.ownerOrder = append(m.ownerOrder, owner.ID)
	return nil
}

// GetOwner retrieves an owner by ID.
func (m *MockStore) GetOwner(ctx context.Context, id string) (*Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("GetOwner"); err != nil {
		return nil, err
	}
	o, ok := m.owners[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyOwner(o), nil
}

// GetOwnerByUsername retrieves an owner by username.
func (m *MockStore) GetOwnerByUsername(ctx context.Context, username string) (*Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("GetOwnerByUsername"); err != nil {
		return nil, err
	}
	for _, o := range m.owners {
		if o.Username == username {
			return copyOwner(o), nil
		}
	}
	return nil, ErrNotFound
}

// ListOwners returns all owners in insertion order.
func (m *MockStore) ListOwners(ctx context.Context) ([]*Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("ListOwners"); err != nil {
		return nil, err
	}
	owners := make([]*Owner, 0, len(m.ownerOrder))
	for _, id := range m.ownerOrder {
		owners = append(owners, copyOwner(m.owners[id]))
	}
	return owners, nil
}

// SetOwnerPostIDs overwrites an owner's back-reference list.
func (m *MockStore) SetOwnerPostIDs(ctx context.Context, id string, postIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("SetOwnerPostIDs"); err != nil {
		return err
	}
	o, ok := m.owners[id]
	if !ok {
		return ErrNotFound
	}
	o.PostIDs = append([]string{}, postIDs...)
	return nil
}

// CreatePost stores a new post.
func (m *MockStore) CreatePost(ctx context.Context, post *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("CreatePost"); err != nil {
		return err
	}
	post.ID = m.newID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	m.posts[post.ID] = copyPost(post)
	m.postOrder = append(m.postOrder, post.ID)
	return nil
}

// GetPost retrieves a post by ID.
func (m *MockStore) GetPost(ctx context.Context, id string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("GetPost"); err != nil {
		return nil, err
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyPost(p), nil
}

// ListPosts returns posts matching the filter in insertion order.
func (m *MockStore) ListPosts(ctx context.Context, filter PostFilter) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("ListPosts"); err != nil {
		return nil, err
	}

	var wanted map[string]bool
	if filter.IDs != nil {
		wanted = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			wanted[id] = true
		}
	}

	posts := []*Post{}
	for _, id := range m.postOrder {
		p := m.posts[id]
		if filter.OwnerID != "" && (p.OwnerID == nil || *p.OwnerID != filter.OwnerID) {
			continue
		}
		if wanted != nil && !wanted[id] {
			continue
		}
		posts = append(posts, copyPost(p))
	}
	return posts, nil
}

// ReplacePostFields overwrites a post's content fields wholesale.
func (m *MockStore) ReplacePostFields(ctx context.Context, id string, fields PostFields) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("ReplacePostFields"); err != nil {
		return nil, err
	}
	p, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Title = cloneString(fields.Title)
	p.Author = cloneString(fields.Author)
	p.URL = cloneString(fields.URL)
	p.LikeCount = cloneInt(fields.LikeCount)
	return copyPost(p), nil
}

// DeletePost removes a post by ID.
func (m *MockStore) DeletePost(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("DeletePost"); err != nil {
		return err
	}
	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	for i, pid := range m.postOrder {
		if pid == id {
			m.postOrder = append(m.postOrder[:i], m.postOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Reset deletes every post and owner.
func (m *MockStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure("Reset"); err != nil {
		return err
	}
	m.owners = make(map[string]*Owner)
	m.ownerOrder = nil
	m.posts = make(map[string]*Post)
	m.postOrder = nil
	return nil
}

// Close is a no-op for MockStore.
func (m *MockStore) Close() error {
	return nil
}

func copyOwner(o *Owner) *Owner {
	c := *o
	c.PostIDs = append([]string{}, o.PostIDs...)
	return &c
}

func copyPost(p *Post) *Post {
	c := *p
	c.Title = cloneString(p.Title)
	c.Author = cloneString(p.Author)
	c.URL = cloneString(p.URL)
	c.LikeCount = cloneInt(p.LikeCount)
	c.OwnerID = cloneString(p.OwnerID)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
