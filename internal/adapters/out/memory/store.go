// Package memory provides an in-memory implementation of the Unit of Work
// pattern and its repositories. It backs handler and workflow tests that need
// real transactional semantics without a database container.
//
// Transactions are serialized: Begin takes the store lock and snapshots the
// order table, Commit releases the lock, Rollback restores the snapshot
// first. Repository calls outside a transaction lock per operation, matching
// the auto-commit behavior of the SQL adapter.
package memory

import (
	"sync"
	"time"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/core/domain/model/workorder"
)

// Store holds the in-memory tables shared by every unit of work created from
// the same factory.
type Store struct {
	mu        sync.Mutex
	orders    map[kernel.UUID]*workorder.WorkOrder
	templates map[kernel.UUID]*template.ServiceTemplate
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders:    make(map[kernel.UUID]*workorder.WorkOrder),
		templates: make(map[kernel.UUID]*template.ServiceTemplate),
	}
}

// SeedTemplate inserts a catalog entry. Templates are administered outside
// the service, so tests seed them directly rather than through a repository.
func (s *Store) SeedTemplate(tmpl *template.ServiceTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tmpl.ID()] = tmpl
}

// snapshotOrders deep-copies the order table for rollback.
func (s *Store) snapshotOrders() map[kernel.UUID]*workorder.WorkOrder {
	snapshot := make(map[kernel.UUID]*workorder.WorkOrder, len(s.orders))
	for id, o := range s.orders {
		snapshot[id] = cloneOrder(o)
	}
	return snapshot
}

// cloneOrder rebuilds an aggregate so callers cannot mutate stored state
// through a shared pointer. CapturedData already clones on read.
func cloneOrder(o *workorder.WorkOrder) *workorder.WorkOrder {
	var assigneeID *kernel.UUID
	if o.Assignee() != nil {
		id := *o.Assignee()
		assigneeID = &id
	}

	var completedAt *time.Time
	if o.CompletedAt() != nil {
		at := *o.CompletedAt()
		completedAt = &at
	}

	clone, err := workorder.RestoreWorkOrder(
		o.ID(),
		o.TemplateID(),
		o.CustomerName(),
		o.CustomerAddress(),
		assigneeID,
		o.Status(),
		o.CapturedData(),
		o.CreatedAt(),
		completedAt,
	)
	if err != nil {
		// A stored aggregate always satisfies its own invariants.
		panic(err)
	}
	return clone
}
