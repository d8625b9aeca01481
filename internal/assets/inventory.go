package assets

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

// NewInventoryItem returns the item to add to the inventory with a new ID,
// the category defaults to other and the status to active.
func NewInventoryItem(in *model.InventoryItem, now time.Time) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	if err := copier.Copy(item, in); err != nil {
		return nil, errors.Wrap(ErrInvalidAsset, err.Error())
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	item.ID = uuid.NewString()
	item.CreatedAt, item.UpdatedAt = now, now

	return item, nil
}

// UpdateInventoryItem returns in as the new state of existing.
func UpdateInventoryItem(existing, in *model.InventoryItem, now time.Time) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	if err := copier.Copy(item, in); err != nil {
		return nil, errors.Wrap(ErrInvalidAsset, err.Error())
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	item.ID, item.CreatedAt, item.UpdatedAt = existing.ID, existing.CreatedAt, now

	return item, nil
}

// InventoryFilter selects inventory items, empty fields match any item.
type InventoryFilter struct {
	Category model.InventoryCategory
	Status   model.InventoryStatus
	// Search matches name, manufacturer, model, serial number, asset tag or assignee.
	Search string
}

// Apply returns the matching items sorted by name.
func (f InventoryFilter) Apply(items []*model.InventoryItem) []*model.InventoryItem {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []*model.InventoryItem{}

	for _, item := range items {
		if f.Category != "" && item.Category != f.Category {
			continue
		}

		if f.Status != "" && item.Status != f.Status {
			continue
		}

		if search != "" && !containsAny(search,
			item.Name, item.Manufacturer, item.Model, item.SerialNumber, item.AssetTag, item.AssignedTo,
		) {
			continue
		}

		out = append(out, item)
	}

	slices.SortFunc(out, func(a, b *model.InventoryItem) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return out
}

func validateItem(item *model.InventoryItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return errors.Wrap(ErrInvalidAsset, "name required")
	}

	if item.Category == "" {
		item.Category = model.CategoryOther
	}

	category, ok := model.ParseInventoryCategory(string(item.Category))
	if !ok {
		return errors.Wrap(ErrInvalidAsset, "unknown inventory category: "+string(item.Category))
	}

	if item.Status == "" {
		item.Status = model.InventoryActive
	}

	status, ok := model.ParseInventoryStatus(string(item.Status))
	if !ok {
		return errors.Wrap(ErrInvalidAsset, "unknown inventory status: "+string(item.Status))
	}

	if item.PurchasePrice != nil && *item.PurchasePrice < 0 {
		return errors.Wrap(ErrInvalidAsset, "negative purchase price")
	}

	item.Category, item.Status = category, status

	return nil
}
