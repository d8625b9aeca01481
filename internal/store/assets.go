package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

const (
	collectionLoaners   = "loaners"
	collectionLoans     = "loans"
	collectionInventory = "inventory"
)

// records is the storage of JSON encoded asset records by collection and ID a backend provides.
type records interface {
	putRecord(ctx context.Context, collection, id string, data []byte) error
	// getRecord returns ErrNotFound when the record is absent.
	getRecord(ctx context.Context, collection, id string) ([]byte, error)
	listRecords(ctx context.Context, collection string) ([][]byte, error)
	// deleteRecord returns ErrNotFound when the record is absent.
	deleteRecord(ctx context.Context, collection, id string) error
}

// assetRecords implements the loaner and inventory Repository methods over a backend's records.
type assetRecords struct {
	records records
}

func putAsset[T any](ctx context.Context, r records, collection, id string, v *T) error {
	if v == nil {
		return errors.Wrap(ErrStore, "nil "+collection+" record")
	}

	if strings.TrimSpace(id) == "" {
		return errors.Wrap(ErrStore, "empty "+collection+" record ID")
	}

	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(ErrStore, collection+": "+err.Error())
	}

	return r.putRecord(ctx, collection, id, data)
}

func getAsset[T any](ctx context.Context, r records, collection, id string) (*T, error) {
	data, err := r.getRecord(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, errors.Wrap(ErrStore, collection+": "+err.Error())
	}

	return v, nil
}

func listAssets[T any](ctx context.Context, r records, collection string) ([]*T, error) {
	all, err := r.listRecords(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(all))

	for _, data := range all {
		v := new(T)
		if err := json.Unmarshal(data, v); err != nil {
			return nil, errors.Wrap(ErrStore, collection+": "+err.Error())
		}

		out = append(out, v)
	}

	return out, nil
}

func (a assetRecords) PutLoaner(ctx context.Context, loaner *model.Loaner) error {
	if loaner == nil {
		return errors.Wrap(ErrStore, "nil loaner")
	}

	return putAsset(ctx, a.records, collectionLoaners, loaner.ID, loaner)
}

func (a assetRecords) Loaner(ctx context.Context, id string) (*model.Loaner, error) {
	return getAsset[model.Loaner](ctx, a.records, collectionLoaners, id)
}

func (a assetRecords) Loaners(ctx context.Context) ([]*model.Loaner, error) {
	loaners, err := listAssets[model.Loaner](ctx, a.records, collectionLoaners)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(loaners, func(x, y *model.Loaner) int {
		if c := x.CreatedAt.Compare(y.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(x.ID, y.ID)
	})

	return loaners, nil
}

func (a assetRecords) DeleteLoaner(ctx context.Context, id string) error {
	loans, err := a.Loans(ctx, id)
	if err != nil {
		return err
	}

	if err := a.records.deleteRecord(ctx, collectionLoaners, id); err != nil {
		return err
	}

	for _, loan := range loans {
		if err := a.records.deleteRecord(ctx, collectionLoans, loan.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	return nil
}

func (a assetRecords) PutLoan(ctx context.Context, loan *model.LoanHistory) error {
	if loan == nil {
		return errors.Wrap(ErrStore, "nil loan")
	}

	if loan.LoanerID == "" {
		return errors.Wrap(ErrStore, "loan without a loaner ID")
	}

	return putAsset(ctx, a.records, collectionLoans, loan.ID, loan)
}

func (a assetRecords) Loans(ctx context.Context, loanerID string) ([]*model.LoanHistory, error) {
	all, err := listAssets[model.LoanHistory](ctx, a.records, collectionLoans)
	if err != nil {
		return nil, err
	}

	loans := []*model.LoanHistory{}

	for _, loan := range all {
		if loan.LoanerID == loanerID {
			loans = append(loans, loan)
		}
	}

	slices.SortFunc(loans, func(x, y *model.LoanHistory) int {
		return y.CheckoutDate.Compare(x.CheckoutDate)
	})

	return loans, nil
}

func (a assetRecords) PutInventoryItem(ctx context.Context, item *model.InventoryItem) error {
	if item == nil {
		return errors.Wrap(ErrStore, "nil inventory item")
	}

	return putAsset(ctx, a.records, collectionInventory, item.ID, item)
}

func (a assetRecords) InventoryItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	return getAsset[model.InventoryItem](ctx, a.records, collectionInventory, id)
}

func (a assetRecords) InventoryItems(ctx context.Context) ([]*model.InventoryItem, error) {
	items, err := listAssets[model.InventoryItem](ctx, a.records, collectionInventory)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(x, y *model.InventoryItem) int {
		if c := x.CreatedAt.Compare(y.CreatedAt); c != 0 {
			return c
		}

		return strings.Compare(x.ID, y.ID)
	})

	return items, nil
}

func (a assetRecords) DeleteInventoryItem(ctx context.Context, id string) error {
	return a.records.deleteRecord(ctx, collectionInventory, id)
}

// recordKey encodes a record ID so it is valid as a KV key token and a file name.
func recordKey(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

func notFound(collection, id string) error {
	return errors.Wrap(ErrNotFound, collection+": "+id)
}
