package assets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metal-toolbox/fleetdash/internal/fixtures"
	"github.com/metal-toolbox/fleetdash/internal/model"
)

func TestNewLoaner(t *testing.T) {
	testcases := []struct {
		name       string
		in         *model.Loaner
		wantErr    error
		wantStatus model.LoanerStatus
	}{
		{"defaults to available", &model.Loaner{AssetTag: " LN-010 ", Name: "Loaner"}, nil, model.LoanerAvailable},
		{"status is normalized", &model.Loaner{AssetTag: "LN-010", Name: "Loaner", Status: "Maintenance"}, nil, model.LoanerMaintenance},
		{"asset tag required", &model.Loaner{Name: "Loaner"}, ErrInvalidAsset, ""},
		{"name required", &model.Loaner{AssetTag: "LN-010", Name: "  "}, ErrInvalidAsset, ""},
		{"unknown status", &model.Loaner{AssetTag: "LN-010", Name: "Loaner", Status: "lost"}, ErrInvalidAsset, ""},
		{"never added checked out", &model.Loaner{AssetTag: "LN-010", Name: "Loaner", Status: model.LoanerCheckedOut}, ErrLoanerState, ""},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewLoaner(tc.in, fixtures.Now)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "LN-010", got.AssetTag)
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.True(t, fixtures.Now.Equal(got.CreatedAt))
			assert.True(t, fixtures.Now.Equal(got.UpdatedAt))
		})
	}
}

func TestNewLoanerDropsLoanFields(t *testing.T) {
	in := &model.Loaner{
		ID: "chosen-by-client", AssetTag: "LN-011", Name: "Loaner",
		BorrowerName: "Someone", CheckoutDate: &fixtures.Now,
	}

	got, err := NewLoaner(in, fixtures.Now)
	require.NoError(t, err)

	assert.NotEqual(t, "chosen-by-client", got.ID)
	assert.Empty(t, got.BorrowerName)
	assert.Nil(t, got.CheckoutDate)

	// the request is left untouched
	assert.Equal(t, "Someone", in.BorrowerName)
}

func TestUpdateLoaner(t *testing.T) {
	later := fixtures.Now.Add(time.Hour)

	t.Run("descriptive fields change, loan fields are kept", func(t *testing.T) {
		existing := fixtures.NewLoaners()[1]

		got, err := UpdateLoaner(existing, &model.Loaner{
			AssetTag: "LN-002", Name: "Renamed", Condition: "scratched", BorrowerName: "Mallory",
		}, later)
		require.NoError(t, err)

		assert.Equal(t, existing.ID, got.ID)
		assert.Equal(t, "Renamed", got.Name)
		assert.Equal(t, "scratched", got.Condition)
		assert.Equal(t, model.LoanerCheckedOut, got.Status)
		assert.Equal(t, "Dana Reyes", got.BorrowerName)
		assert.Equal(t, existing.CheckoutDate, got.CheckoutDate)
		assert.True(t, existing.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, later.Equal(got.UpdatedAt))
	})

	t.Run("available to maintenance", func(t *testing.T) {
		got, err := UpdateLoaner(fixtures.NewLoaners()[0], &model.Loaner{
			AssetTag: "LN-001", Name: "Loaner MacBook Air", Status: model.LoanerMaintenance,
		}, later)
		require.NoError(t, err)
		assert.Equal(t, model.LoanerMaintenance, got.Status)
	})

	t.Run("checked out only through checkout", func(t *testing.T) {
		_, err := UpdateLoaner(fixtures.NewLoaners()[0], &model.Loaner{
			AssetTag: "LN-001", Name: "Loaner MacBook Air", Status: model.LoanerCheckedOut,
		}, later)
		assert.ErrorIs(t, err, ErrLoanerState)
	})

	t.Run("checked out leaves only through return", func(t *testing.T) {
		_, err := UpdateLoaner(fixtures.NewLoaners()[1], &model.Loaner{
			AssetTag: "LN-002", Name: "Loaner ThinkPad", Status: model.LoanerAvailable,
		}, later)
		assert.ErrorIs(t, err, ErrLoanerState)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := UpdateLoaner(fixtures.NewLoaners()[0], &model.Loaner{Name: "no tag"}, later)
		assert.ErrorIs(t, err, ErrInvalidAsset)
	})
}

func TestCheckOutAndReturn(t *testing.T) {
	loaner := fixtures.NewLoaners()[0]
	due := fixtures.Now.Add(7 * 24 * time.Hour)

	loan, err := CheckOut(loaner, Checkout{
		BorrowerName:       " Grace Hopper ",
		BorrowerEmail:      "grace@example.edu",
		BorrowerDepartment: "Computer Science",
		ExpectedReturnDate: &due,
		Notes:              "conference travel",
	}, fixtures.Now)
	require.NoError(t, err)

	assert.Equal(t, model.LoanerCheckedOut, loaner.Status)
	assert.Equal(t, "Grace Hopper", loaner.BorrowerName)
	require.NotNil(t, loaner.CheckoutDate)
	assert.True(t, fixtures.Now.Equal(*loaner.CheckoutDate))
	assert.False(t, loaner.Overdue(fixtures.Now))
	assert.True(t, loaner.Overdue(due.Add(time.Minute)))

	assert.NotEmpty(t, loan.ID)
	assert.Equal(t, loaner.ID, loan.LoanerID)
	assert.Equal(t, "Grace Hopper", loan.BorrowerName)
	assert.Equal(t, "conference travel", loan.Notes)
	assert.Nil(t, loan.ActualReturnDate)

	_, err = CheckOut(loaner, Checkout{BorrowerName: "Second"}, fixtures.Now)
	assert.ErrorIs(t, err, ErrLoanerState)

	returnedAt := due.Add(24 * time.Hour)
	earlier := &model.LoanHistory{ID: "old", LoanerID: loaner.ID, CheckoutDate: fixtures.Now.Add(-30 * 24 * time.Hour)}
	other := &model.LoanHistory{ID: "other", LoanerID: "loaner-9", CheckoutDate: fixtures.Now}

	closed, err := Return(loaner, []*model.LoanHistory{earlier, loan, other}, "returned without charger", returnedAt)
	require.NoError(t, err)
	require.NotNil(t, closed)

	assert.Equal(t, loan.ID, closed.ID)
	require.NotNil(t, closed.ActualReturnDate)
	assert.True(t, returnedAt.Equal(*closed.ActualReturnDate))
	assert.Equal(t, "conference travel\nreturned without charger", closed.Notes)
	assert.True(t, closed.Overdue(fixtures.Now))
	assert.Nil(t, other.ActualReturnDate)

	assert.Equal(t, model.LoanerAvailable, loaner.Status)
	assert.Empty(t, loaner.BorrowerName)
	assert.Nil(t, loaner.CheckoutDate)
	assert.Nil(t, loaner.ExpectedReturnDate)
	require.NotNil(t, loaner.ActualReturnDate)
	assert.False(t, loaner.Overdue(returnedAt.Add(time.Hour)))

	_, err = Return(loaner, nil, "", returnedAt)
	assert.ErrorIs(t, err, ErrLoanerState)
}

func TestCheckOutRejects(t *testing.T) {
	past := fixtures.Now.Add(-time.Hour)

	testcases := []struct {
		name    string
		loaner  *model.Loaner
		c       Checkout
		wantErr error
	}{
		{"maintenance", fixtures.NewLoaners()[3], Checkout{BorrowerName: "Ann"}, ErrLoanerState},
		{"retired", fixtures.NewLoaners()[4], Checkout{BorrowerName: "Ann"}, ErrLoanerState},
		{"already out", fixtures.NewLoaners()[1], Checkout{BorrowerName: "Ann"}, ErrLoanerState},
		{"no borrower", fixtures.NewLoaners()[0], Checkout{BorrowerName: " "}, ErrInvalidAsset},
		{"return in the past", fixtures.NewLoaners()[0], Checkout{BorrowerName: "Ann", ExpectedReturnDate: &past}, ErrInvalidAsset},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			status := tc.loaner.Status

			_, err := CheckOut(tc.loaner, tc.c, fixtures.Now)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, status, tc.loaner.Status)
		})
	}
}

func TestReturnWithoutOpenLoan(t *testing.T) {
	loaner := fixtures.NewLoaners()[2]

	closed, err := Return(loaner, fixtures.NewLoans()[:2], "", fixtures.Now)
	require.NoError(t, err)
	assert.Nil(t, closed)
	assert.Equal(t, model.LoanerAvailable, loaner.Status)
}

func TestSortHistory(t *testing.T) {
	loans := fixtures.NewLoans()
	SortHistory(loans)

	ids := []string{}
	for _, l := range loans {
		ids = append(ids, l.ID)
	}

	assert.Equal(t, []string{"loan-3", "loan-1", "loan-2"}, ids)
}

func TestFilterLoaners(t *testing.T) {
	testcases := []struct {
		name   string
		status model.LoanerStatus
		search string
		want   []string
	}{
		{"all sorted by asset tag", "", "", []string{"LN-001", "LN-002", "LN-003", "LN-004", "LN-005"}},
		{"checked out", model.LoanerCheckedOut, "", []string{"LN-002", "LN-003"}},
		{"search borrower", "", "dana", []string{"LN-002"}},
		{"search serial", "", "c02loan", []string{"LN-001", "LN-003", "LN-005"}},
		{"status and search", model.LoanerAvailable, "thinkpad", []string{}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			loaners := fixtures.NewLoaners()
			// reverse so sorting is exercised
			for i, j := 0, len(loaners)-1; i < j; i, j = i+1, j-1 {
				loaners[i], loaners[j] = loaners[j], loaners[i]
			}

			got := []string{}
			for _, l := range FilterLoaners(loaners, tc.status, tc.search) {
				got = append(got, l.AssetTag)
			}

			assert.Equal(t, tc.want, got)
		})
	}
}
