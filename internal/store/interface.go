package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/metal-toolbox/fleetdash/internal/app"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/types"
)

const (
	pkgName = "internal/store"
)

var (
	ErrStore     = errors.New("store error")
	ErrNotFound  = errors.New("not found in store")
	ErrStoreKind = errors.New("unsupported store kind")
)

//go:generate mockgen -source interface.go -destination=mock_repository.go -package=store

// Repository persists the uploaded CSV exports, the retired device flags,
// the loaner pool with its loans and the inventory.
//
// The merged device set is never stored, it is recomputed from the exports on demand.
type Repository interface {
	// PutSource stores the export, replacing any previous export of the same kind.
	PutSource(ctx context.Context, source *types.SourceValue) error
	// Source returns the stored export of the given kind, ErrNotFound when absent.
	Source(ctx context.Context, kind model.SourceKind) (*types.SourceValue, error)
	// Sources returns all stored exports.
	Sources(ctx context.Context) ([]*types.SourceValue, error)
	DeleteSource(ctx context.Context, kind model.SourceKind) error

	// Retire flags a device ID as retired, retiring an already retired device is a no-op.
	Retire(ctx context.Context, deviceID string) error
	// Unretire clears the retired flag, ErrNotFound when the device was not retired.
	Unretire(ctx context.Context, deviceID string) error
	// RetiredIDs returns the sorted retired device IDs.
	RetiredIDs(ctx context.Context) ([]string, error)

	// PutLoaner stores the loaner by ID, replacing a previous version.
	PutLoaner(ctx context.Context, loaner *model.Loaner) error
	// Loaner returns the loaner, ErrNotFound when absent.
	Loaner(ctx context.Context, id string) (*model.Loaner, error)
	// Loaners returns all loaners in the order they were created.
	Loaners(ctx context.Context) ([]*model.Loaner, error)
	// DeleteLoaner removes the loaner and its loans, ErrNotFound when absent.
	DeleteLoaner(ctx context.Context, id string) error
	// PutLoan stores a loan by ID, replacing a previous version.
	PutLoan(ctx context.Context, loan *model.LoanHistory) error
	// Loans returns the loans of a loaner, most recent checkout first.
	Loans(ctx context.Context, loanerID string) ([]*model.LoanHistory, error)

	PutInventoryItem(ctx context.Context, item *model.InventoryItem) error
	// InventoryItem returns the item, ErrNotFound when absent.
	InventoryItem(ctx context.Context, id string) (*model.InventoryItem, error)
	InventoryItems(ctx context.Context) ([]*model.InventoryItem, error)
	// DeleteInventoryItem removes the item, ErrNotFound when absent.
	DeleteInventoryItem(ctx context.Context, id string) error

	Close() error
}

// NewRepository returns the Repository for the configured store kind.
func NewRepository(ctx context.Context, config *app.Configuration, logger *logrus.Logger) (Repository, error) {
	switch config.StoreKind {
	case model.StoreKindMemory, "":
		return NewMemStore(), nil
	case model.StoreKindDirectory:
		return NewDirectoryStore(config.StoreDirectory, logger)
	case model.StoreKindNATS:
		return NewNATSKV(ctx, config.NatsOptions, logger)
	default:
		return nil, errors.Wrap(ErrStoreKind, string(config.StoreKind))
	}
}
