package memory

import (
	"context"
	"sync"

	"github.com/example/inventory-service/internal/domains/orders/ports"
)

var _ ports.Transactor = (*Transactor)(nil)

// Transactor serializes workflow units of work with a mutex. It provides the
// mutual exclusion the engine needs in a single process but no rollback: a
// unit that fails midway leaves earlier writes applied, which is the
// documented limitation of the in-memory stack. Durable deployments use the
// gorm-backed transactor instead.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
