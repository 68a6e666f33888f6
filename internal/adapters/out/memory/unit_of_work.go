package memory

import (
	"context"
	"errors"

	"foodshare/internal/core/ports"
)

var ErrNoActiveTransaction = errors.New("memory: no active unit of work")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages changes on a private copy of the store between Begin and
// Commit. Repositories used without Begin apply each call immediately.
type UnitOfWork struct {
	store  *Store
	staged *state
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.staged != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	uow.store.txLock.Lock()
	uow.staged = uow.store.snapshot()
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.staged == nil {
		return ErrNoActiveTransaction
	}

	uow.store.publish(uow.staged)
	uow.staged = nil
	uow.store.txLock.Unlock()
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.staged == nil {
		return ErrNoActiveTransaction
	}

	uow.staged = nil
	uow.store.txLock.Unlock()
	return nil
}

// run applies fn to the staged copy inside a unit of work, or to committed
// state otherwise.
func (uow *UnitOfWork) run(write bool, fn func(*state) error) error {
	if uow.staged != nil {
		return fn(uow.staged)
	}
	if write {
		return uow.store.write(fn)
	}
	return uow.store.view(fn)
}

func (uow *UnitOfWork) UserRepository() ports.UserRepository {
	return &UserRepository{uow: uow}
}

func (uow *UnitOfWork) DonationRepository() ports.DonationRepository {
	return &DonationRepository{uow: uow}
}

func (uow *UnitOfWork) RequestRepository() ports.RequestRepository {
	return &RequestRepository{uow: uow}
}

func (uow *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return &DeliveryRepository{uow: uow}
}
