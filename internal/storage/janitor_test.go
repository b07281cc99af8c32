package storage

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// recordingStore запоминает удалённые пути; пути из fail возвращают ошибку
type recordingStore struct {
	mu      sync.Mutex
	removed []string
	fail    map[string]bool
}

func (s *recordingStore) Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error) {
	return "", errors.New("not implemented")
}

func (s *recordingStore) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[path] {
		return errors.New("boom")
	}
	s.removed = append(s.removed, path)
	return nil
}

func TestJanitor_RemovesAllAndSwallowsErrors(t *testing.T) {
	st := &recordingStore{fail: map[string]bool{"b": true}}
	j := NewJanitor(st, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	j.Remove(ctx, "a", "", "b", "c", "d", "e")
	// отмена контекста запроса не должна прерывать уборку
	cancel()
	j.Wait()

	sort.Strings(st.removed)
	assert.Equal(t, []string{"a", "c", "d", "e"}, st.removed)
}

func TestJanitor_NoPathsIsNoop(t *testing.T) {
	st := &recordingStore{}
	j := NewJanitor(st, zap.NewNop().Sugar())
	j.Remove(context.Background())
	j.Remove(context.Background(), "")
	j.Wait()
	assert.Empty(t, st.removed)
}
