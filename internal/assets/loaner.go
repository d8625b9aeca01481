// Package assets tracks the hand maintained IT assets next to the merged fleet,
// the loaner laptop pool with its loan history and the general inventory.
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

var (
	ErrInvalidAsset = errors.New("invalid asset")
	ErrLoanerState  = errors.New("loaner state conflict")
)

// Checkout is the borrower and terms of a loan.
type Checkout struct {
	BorrowerName       string     `json:"borrowerName"`
	BorrowerEmail      string     `json:"borrowerEmail,omitempty"`
	BorrowerDepartment string     `json:"borrowerDepartment,omitempty"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}

// NewLoaner returns the loaner to add to the pool, with a new ID and the status defaulted to available.
//
// Loaners are never added checked out, a loan is started with CheckOut.
func NewLoaner(in *model.Loaner, now time.Time) (*model.Loaner, error) {
	l := &model.Loaner{}
	if err := copier.Copy(l, in); err != nil {
		return nil, errors.Wrap(ErrInvalidAsset, err.Error())
	}

	if l.Status == "" {
		l.Status = model.LoanerAvailable
	}

	if err := validateLoaner(l); err != nil {
		return nil, err
	}

	if l.Status == model.LoanerCheckedOut {
		return nil, errors.Wrap(ErrLoanerState, "a new loaner cannot be checked out")
	}

	clearLoan(l)

	l.ID = uuid.NewString()
	l.CreatedAt, l.UpdatedAt = now, now

	return l, nil
}

// UpdateLoaner returns existing with the descriptive fields and status of in.
//
// The loan fields are kept, a checked out loaner changes status only through Return.
func UpdateLoaner(existing, in *model.Loaner, now time.Time) (*model.Loaner, error) {
	l := &model.Loaner{}
	if err := copier.Copy(l, in); err != nil {
		return nil, errors.Wrap(ErrInvalidAsset, err.Error())
	}

	if l.Status == "" {
		l.Status = existing.Status
	}

	if err := validateLoaner(l); err != nil {
		return nil, err
	}

	if l.Status != existing.Status && (l.Status == model.LoanerCheckedOut || existing.Status == model.LoanerCheckedOut) {
		return nil, errors.Wrapf(ErrLoanerState, "status change %s to %s", existing.Status, l.Status)
	}

	l.ID, l.CreatedAt, l.UpdatedAt = existing.ID, existing.CreatedAt, now
	l.BorrowerName, l.BorrowerEmail, l.BorrowerDepartment = existing.BorrowerName, existing.BorrowerEmail, existing.BorrowerDepartment
	l.CheckoutDate, l.ExpectedReturnDate, l.ActualReturnDate = existing.CheckoutDate, existing.ExpectedReturnDate, existing.ActualReturnDate

	return l, nil
}

// CheckOut lends an available loaner and returns the opened loan.
func CheckOut(l *model.Loaner, c Checkout, now time.Time) (*model.LoanHistory, error) {
	if l.Status != model.LoanerAvailable {
		return nil, errors.Wrapf(ErrLoanerState, "loaner %s is %s", l.AssetTag, l.Status)
	}

	c.BorrowerName = strings.TrimSpace(c.BorrowerName)
	if c.BorrowerName == "" {
		return nil, errors.Wrap(ErrInvalidAsset, "borrower name required")
	}

	if c.ExpectedReturnDate != nil && c.ExpectedReturnDate.Before(now) {
		return nil, errors.Wrap(ErrInvalidAsset, "expected return date is in the past")
	}

	checkout := now

	l.Status = model.LoanerCheckedOut
	l.BorrowerName = c.BorrowerName
	l.BorrowerEmail = strings.TrimSpace(c.BorrowerEmail)
	l.BorrowerDepartment = strings.TrimSpace(c.BorrowerDepartment)
	l.CheckoutDate = &checkout
	l.ExpectedReturnDate = c.ExpectedReturnDate
	l.ActualReturnDate = nil
	l.UpdatedAt = now

	return &model.LoanHistory{
		ID:                 uuid.NewString(),
		LoanerID:           l.ID,
		BorrowerName:       l.BorrowerName,
		BorrowerEmail:      l.BorrowerEmail,
		BorrowerDepartment: l.BorrowerDepartment,
		CheckoutDate:       checkout,
		ExpectedReturnDate: c.ExpectedReturnDate,
		Notes:              c.Notes,
	}, nil
}

// Return makes a checked out loaner available again and closes its open loan in history.
//
// The closed loan is returned, nil when history holds no open loan of the loaner.
func Return(l *model.Loaner, history []*model.LoanHistory, notes string, now time.Time) (*model.LoanHistory, error) {
	if l.Status != model.LoanerCheckedOut {
		return nil, errors.Wrapf(ErrLoanerState, "loaner %s is %s", l.AssetTag, l.Status)
	}

	returned := now

	clearLoan(l)
	l.Status = model.LoanerAvailable
	l.ActualReturnDate = &returned
	l.UpdatedAt = now

	var open *model.LoanHistory

	for _, h := range history {
		if h.LoanerID != l.ID || h.ActualReturnDate != nil {
			continue
		}

		if open == nil || h.CheckoutDate.After(open.CheckoutDate) {
			open = h
		}
	}

	if open == nil {
		return nil, nil
	}

	open.ActualReturnDate = &returned

	if notes = strings.TrimSpace(notes); notes != "" {
		if open.Notes != "" {
			open.Notes += "\n"
		}

		open.Notes += notes
	}

	return open, nil
}

// SortHistory orders loans most recent checkout first.
func SortHistory(history []*model.LoanHistory) {
	slices.SortFunc(history, func(a, b *model.LoanHistory) int {
		return b.CheckoutDate.Compare(a.CheckoutDate)
	})
}

// FilterLoaners returns the loaners in status, any when empty, matching search on
// asset tag, name, borrower, serial number or model, sorted by asset tag.
func FilterLoaners(loaners []*model.Loaner, status model.LoanerStatus, search string) []*model.Loaner {
	search = strings.ToLower(strings.TrimSpace(search))
	out := []*model.Loaner{}

	for _, l := range loaners {
		if status != "" && l.Status != status {
			continue
		}

		if search != "" && !containsAny(search, l.AssetTag, l.Name, l.BorrowerName, l.SerialNumber, l.Model) {
			continue
		}

		out = append(out, l)
	}

	slices.SortFunc(out, func(a, b *model.Loaner) int {
		return strings.Compare(strings.ToLower(a.AssetTag), strings.ToLower(b.AssetTag))
	})

	return out
}

func clearLoan(l *model.Loaner) {
	l.BorrowerName, l.BorrowerEmail, l.BorrowerDepartment = "", "", ""
	l.CheckoutDate, l.ExpectedReturnDate, l.ActualReturnDate = nil, nil, nil
}

func validateLoaner(l *model.Loaner) error {
	l.AssetTag = strings.TrimSpace(l.AssetTag)
	l.Name = strings.TrimSpace(l.Name)

	switch {
	case l.AssetTag == "":
		return errors.Wrap(ErrInvalidAsset, "asset tag required")
	case l.Name == "":
		return errors.Wrap(ErrInvalidAsset, "name required")
	}

	status, ok := model.ParseLoanerStatus(string(l.Status))
	if !ok {
		return errors.Wrap(ErrInvalidAsset, "unknown loaner status: "+string(l.Status))
	}

	l.Status = status

	return nil
}

func containsAny(needle string, haystack ...string) bool {
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}

	return false
}
