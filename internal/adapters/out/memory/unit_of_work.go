package memory

import (
	"context"
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/domain/model/template"
	"fieldservice/internal/core/domain/model/workorder"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when Begin was
// not called first.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates unit of work instances over a shared store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory whose unit of work instances share
// the given store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork over the shared store.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork implements ports.UnitOfWork against the in-memory store.
// A transaction holds the store lock, so concurrent transactions serialize
// at Begin the way row locks serialize writers in the SQL adapter.
type UnitOfWork struct {
	store    *Store
	active   bool
	snapshot map[kernel.UUID]*workorder.WorkOrder
}

// Begin starts a transaction: takes the store lock and snapshots the order
// table so Rollback can restore it. Multiple Begin calls are safe.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.store.mu.Lock()
	uow.snapshot = uow.store.snapshotOrders()
	uow.active = true
	return nil
}

// Commit keeps the changes made since Begin and releases the store lock.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.snapshot = nil
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

// Rollback restores the order table to its state at Begin and releases the
// store lock.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.store.orders = uow.snapshot
	uow.snapshot = nil
	uow.active = false
	uow.store.mu.Unlock()
	return nil
}

// OrderRepository returns the order repository bound to this unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

// TemplateRepository returns the template repository bound to this unit of work.
func (uow *UnitOfWork) TemplateRepository() ports.TemplateRepository {
	return &TemplateRepository{uow: uow}
}

// do runs op against the store, locking per call when no transaction is
// active (auto-commit mode).
func (uow *UnitOfWork) do(op func(*Store) error) error {
	if uow.active {
		return op(uow.store)
	}

	uow.store.mu.Lock()
	defer uow.store.mu.Unlock()
	return op(uow.store)
}

// OrderRepository implements ports.OrderRepository over the in-memory store.
type OrderRepository struct {
	uow *UnitOfWork
}

// Add stores a new order. A duplicate ID surfaces as errs.ErrVersionIsInvalid,
// matching the SQL adapter's duplicate-key mapping.
func (r *OrderRepository) Add(_ context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.do(func(s *Store) error {
		if _, exists := s.orders[aggregate.ID()]; exists {
			return errs.NewVersionIsInvalidError("orderID", errors.New("order already exists"))
		}
		s.orders[aggregate.ID()] = cloneOrder(aggregate)
		return nil
	})
}

// UpdateIfStatus writes the order only while the stored status still equals
// expectedStatus.
func (r *OrderRepository) UpdateIfStatus(
	_ context.Context,
	aggregate *workorder.WorkOrder,
	expectedStatus workorder.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	return r.uow.do(func(s *Store) error {
		stored, exists := s.orders[aggregate.ID()]
		if !exists {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		if stored.Status() != expectedStatus {
			return ports.ErrConcurrentUpdate
		}
		s.orders[aggregate.ID()] = cloneOrder(aggregate)
		return nil
	})
}

// Get retrieves an order by ID.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *workorder.WorkOrder
	err := r.uow.do(func(s *Store) error {
		stored, exists := s.orders[id]
		if !exists {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		found = cloneOrder(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetAllInProgressByAssignee retrieves the technician's in-progress orders.
func (r *OrderRepository) GetAllInProgressByAssignee(
	_ context.Context,
	technicianID kernel.UUID,
) ([]*workorder.WorkOrder, error) {
	if err := technicianID.Validate(); err != nil {
		return nil, err
	}

	orders := make([]*workorder.WorkOrder, 0)
	err := r.uow.do(func(s *Store) error {
		for _, stored := range s.orders {
			if stored.Status() != workorder.InProgress {
				continue
			}
			if stored.Assignee() == nil || *stored.Assignee() != technicianID {
				continue
			}
			orders = append(orders, cloneOrder(stored))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Delete removes an order from the store.
func (r *OrderRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.uow.do(func(s *Store) error {
		if _, exists := s.orders[id]; !exists {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		delete(s.orders, id)
		return nil
	})
}

// TemplateRepository implements ports.TemplateRepository over the in-memory
// store. Read-only, like its SQL counterpart.
type TemplateRepository struct {
	uow *UnitOfWork
}

// Get retrieves a template by ID.
func (r *TemplateRepository) Get(_ context.Context, id kernel.UUID) (*template.ServiceTemplate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *template.ServiceTemplate
	err := r.uow.do(func(s *Store) error {
		stored, exists := s.templates[id]
		if !exists {
			return errs.NewObjectNotFoundError("template", id.String())
		}
		found = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetAll retrieves the whole catalog.
func (r *TemplateRepository) GetAll(_ context.Context) ([]*template.ServiceTemplate, error) {
	templates := make([]*template.ServiceTemplate, 0)
	err := r.uow.do(func(s *Store) error {
		for _, stored := range s.templates {
			templates = append(templates, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}
