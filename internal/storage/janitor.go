package storage

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const janitorParallelism = 4

// Janitor удаляет файлы в фоне после фиксации транзакции.
// Ошибки только логируются: удаление best-effort, без повторов.
type Janitor struct {
	store  FileStore
	logger *zap.SugaredLogger
	wg     sync.WaitGroup
}

// NewJanitor создаёт фоновый «уборщик» файлов.
func NewJanitor(store FileStore, logger *zap.SugaredLogger) *Janitor {
	return &Janitor{store: store, logger: logger}
}

// Remove запускает удаление путей и сразу возвращает управление.
// Контекст запроса отвязывается от отмены: ответ клиенту не ждёт удаления.
func (j *Janitor) Remove(ctx context.Context, paths ...string) {
	paths = nonEmpty(paths)
	if len(paths) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.removeAll(ctx, paths)
	}()
}

// Wait блокируется до завершения всех запущенных удалений.
func (j *Janitor) Wait() {
	j.wg.Wait()
}

func (j *Janitor) removeAll(ctx context.Context, paths []string) {
	var g errgroup.Group
	g.SetLimit(janitorParallelism)
	for _, p := range paths {
		g.Go(func() error {
			if err := j.store.Remove(ctx, p); err != nil {
				j.logger.Warnw("file cleanup failed", "path", p, "error", err)
				return nil
			}
			j.logger.Debugw("file removed", "path", p)
			return nil
		})
	}
	_ = g.Wait()
}

func nonEmpty(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
