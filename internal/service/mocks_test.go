package service

import (
	"MediaShelf/internal/model"
	"MediaShelf/internal/repo"
	"MediaShelf/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// resetMock сбрасывает ожидания и историю вызовов, когда мок общий для подтестов:
// без очистки Calls проверки AssertNotCalled видят вызовы соседних подтестов.
func resetMock(m *mock.Mock) {
	m.ExpectedCalls = nil
	m.Calls = nil
}

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetProfile(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, id string, updates map[string]any) (*model.User, error) {
	args := m.Called(ctx, id, updates)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) DeleteUserCascade(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).([]string); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ToggleFavoriteItem(ctx context.Context, userID, itemID string) (bool, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Bool(0), args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.CollectionRepository
type mockCollectionRepo struct{ mock.Mock }

func (m *mockCollectionRepo) Create(ctx context.Context, c *model.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCollectionRepo) GetByID(ctx context.Context, id string) (*model.Collection, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*model.Collection); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollectionRepo) List(ctx context.Context) ([]model.Collection, error) {
	args := m.Called(ctx)
	if l, ok := args.Get(0).([]model.Collection); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollectionRepo) ListByCreator(ctx context.Context, creatorID string) ([]model.Collection, error) {
	args := m.Called(ctx, creatorID)
	if l, ok := args.Get(0).([]model.Collection); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollectionRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Collection, error) {
	args := m.Called(ctx, id, updates)
	if c, ok := args.Get(0).(*model.Collection); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCollectionRepo) DeleteCascade(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).([]string); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.CollectionRepository = (*mockCollectionRepo)(nil)

// мок для repo.ItemRepository
type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, it *model.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *mockItemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	args := m.Called(ctx, id)
	if it, ok := args.Get(0).(*model.Item); ok {
		return it, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) ListByCollection(ctx context.Context, collectionID string) ([]model.Item, error) {
	args := m.Called(ctx, collectionID)
	if l, ok := args.Get(0).([]model.Item); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, id string, updates map[string]any) (*model.Item, error) {
	args := m.Called(ctx, id, updates)
	if it, ok := args.Get(0).(*model.Item); ok {
		return it, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Move(ctx context.Context, id, toCollectionID string, updates map[string]any) (*model.Item, error) {
	args := m.Called(ctx, id, toCollectionID, updates)
	if it, ok := args.Get(0).(*model.Item); ok {
		return it, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) SetMediaList(ctx context.Context, id string, media []string) (*model.Item, error) {
	args := m.Called(ctx, id, media)
	if it, ok := args.Get(0).(*model.Item); ok {
		return it, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Delete(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).([]string); ok {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ItemRepository = (*mockItemRepo)(nil)

// memStore - хранилище в памяти: запоминает сохранённые и удалённые пути.
type memStore struct {
	mu      sync.Mutex
	seq     int
	saved   []string
	removed []string
	saveErr error
}

func (s *memStore) Save(_ context.Context, originalName, _ string, r io.Reader, _ int64) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p := fmt.Sprintf("uploads/images/%d-%s", s.seq, originalName)
	s.saved = append(s.saved, p)
	return p, nil
}

func (s *memStore) Remove(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, path)
	return nil
}

func (s *memStore) Removed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]string(nil), s.removed...)
	sort.Strings(out)
	return out
}

var _ storage.FileStore = (*memStore)(nil)

// newTestFiles собирает MediaFiles поверх memStore. Возвращает janitor для Wait().
func newTestFiles(t *testing.T) (*MediaFiles, *memStore, *storage.Janitor) {
	t.Helper()
	store := &memStore{}
	janitor := storage.NewJanitor(store, zap.NewNop().Sugar())
	return NewMediaFiles(store, janitor, 1024), store, janitor
}

func pngUpload(name string) *Upload {
	body := "\x89PNG fake"
	return &Upload{Filename: name, ContentType: "image/png", Size: int64(len(body)), Body: strings.NewReader(body)}
}

var errDB = errors.New("db is down")
