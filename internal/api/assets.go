package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/metal-toolbox/fleetdash/internal/assets"
	"github.com/metal-toolbox/fleetdash/internal/model"
	"github.com/metal-toolbox/fleetdash/internal/summary"
)

// maxAssetBodyBytes caps a loaner or inventory request body.
const maxAssetBodyBytes = 1 << 20

// LoanerList is the response of the loaner listing.
type LoanerList struct {
	Total   int             `json:"total"`
	Loaners []*model.Loaner `json:"loaners"`
}

// LoanList is the loan history of a loaner, most recent checkout first.
type LoanList struct {
	LoanerID string               `json:"loanerId"`
	Loans    []*model.LoanHistory `json:"loans"`
}

// ReturnRequest is the optional body of a loaner return.
type ReturnRequest struct {
	Notes string `json:"notes,omitempty"`
}

// InventoryList is the response of the inventory listing.
type InventoryList struct {
	Total int                    `json:"total"`
	Items []*model.InventoryItem `json:"items"`
}

// decodeBody decodes the JSON request body into v, an empty body is accepted when optional.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAssetBodyBytes)).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && optional:
		return nil
	case errors.Is(err, io.EOF):
		return errors.Wrap(ErrBadRequest, "empty request body")
	default:
		return errors.Wrap(ErrBadRequest, "request body: "+err.Error())
	}
}

func assetIDParam(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", errors.Wrap(ErrBadRequest, "empty ID")
	}

	return id, nil
}

func (s *Server) listLoaners(w http.ResponseWriter, r *http.Request) {
	var status model.LoanerStatus

	if param := r.URL.Query().Get("status"); param != "" {
		var ok bool
		if status, ok = model.ParseLoanerStatus(param); !ok {
			s.writeError(w, r, errors.Wrap(ErrBadRequest, "unknown loaner status: "+param))
			return
		}
	}

	loaners, err := s.repo.Loaners(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loaners = assets.FilterLoaners(loaners, status, r.URL.Query().Get("search"))

	writeJSON(w, http.StatusOK, LoanerList{Total: len(loaners), Loaners: loaners})
}

func (s *Server) getLoanerSummary(w http.ResponseWriter, r *http.Request) {
	loaners, err := s.repo.Loaners(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary.SummarizeLoaners(loaners, s.now()))
}

func (s *Server) createLoaner(w http.ResponseWriter, r *http.Request) {
	in := &model.Loaner{}
	if err := decodeBody(w, r, in, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	loaner, err := assets.NewLoaner(in, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.PutLoaner(r.Context(), loaner); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.WithFields(logrus.Fields{"id": loaner.ID, "assetTag": loaner.AssetTag}).Info("loaner added")

	writeJSON(w, http.StatusCreated, loaner)
}

func (s *Server) getLoaner(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loaner, err := s.repo.Loaner(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loaner)
}

func (s *Server) updateLoaner(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	in := &model.Loaner{}
	if err := decodeBody(w, r, in, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.assetsMu.Lock()
	defer s.assetsMu.Unlock()

	existing, err := s.repo.Loaner(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loaner, err := assets.UpdateLoaner(existing, in, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.PutLoaner(r.Context(), loaner); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loaner)
}

func (s *Server) deleteLoaner(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.assetsMu.Lock()
	defer s.assetsMu.Unlock()

	if err := s.repo.DeleteLoaner(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) checkoutLoaner(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var c assets.Checkout
	if err := decodeBody(w, r, &c, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.assetsMu.Lock()
	defer s.assetsMu.Unlock()

	loaner, err := s.repo.Loaner(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loan, err := assets.CheckOut(loaner, c, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.PutLoan(r.Context(), loan); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.PutLoaner(r.Context(), loaner); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.WithFields(logrus.Fields{
		"id":       loaner.ID,
		"assetTag": loaner.AssetTag,
		"borrower": loaner.BorrowerName,
	}).Info("loaner checked out")

	writeJSON(w, http.StatusOK, loaner)
}

func (s *Server) returnLoaner(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req ReturnRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.assetsMu.Lock()
	defer s.assetsMu.Unlock()

	loaner, err := s.repo.Loaner(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	loans, err := s.repo.Loans(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	closed, err := assets.Return(loaner, loans, req.Notes, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if closed != nil {
		if err := s.repo.PutLoan(r.Context(), closed); err != nil {
			s.writeError(w, r, err)
			return
		}
	} else {
		s.logger.WithField("id", loaner.ID).Warn("returned loaner had no open loan")
	}

	if err := s.repo.PutLoaner(r.Context(), loaner); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.WithFields(logrus.Fields{"id": loaner.ID, "assetTag": loaner.AssetTag}).Info("loaner returned")

	writeJSON(w, http.StatusOK, loaner)
}

func (s *Server) listLoans(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.repo.Loaner(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	loans, err := s.repo.Loans(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	assets.SortHistory(loans)

	writeJSON(w, http.StatusOK, LoanList{LoanerID: id, Loans: loans})
}

// inventoryFilter returns the inventory filter of the category, status and search query parameters.
func inventoryFilter(r *http.Request) (assets.InventoryFilter, error) {
	q := r.URL.Query()
	f := assets.InventoryFilter{Search: q.Get("search")}

	if param := q.Get("category"); param != "" {
		category, ok := model.ParseInventoryCategory(param)
		if !ok {
			return f, errors.Wrap(ErrBadRequest, "unknown inventory category: "+param)
		}

		f.Category = category
	}

	if param := q.Get("status"); param != "" {
		status, ok := model.ParseInventoryStatus(param)
		if !ok {
			return f, errors.Wrap(ErrBadRequest, "unknown inventory status: "+param)
		}

		f.Status = status
	}

	return f, nil
}

func (s *Server) listInventory(w http.ResponseWriter, r *http.Request) {
	f, err := inventoryFilter(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items, err := s.repo.InventoryItems(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items = f.Apply(items)

	writeJSON(w, http.StatusOK, InventoryList{Total: len(items), Items: items})
}

func (s *Server) getInventorySummary(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.InventoryItems(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary.SummarizeInventory(items, s.now()))
}

func (s *Server) createInventoryItem(w http.ResponseWriter, r *http.Request) {
	in := &model.InventoryItem{}
	if err := decodeBody(w, r, in, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := assets.NewInventoryItem(in, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.PutInventoryItem(r.Context(), item); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.WithFields(logrus.Fields{"id": item.ID, "category": item.Category}).Info("inventory item added")

	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) getInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.repo.InventoryItem(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) updateInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	in := &model.InventoryItem{}
	if err := decodeBody(w, r, in, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.assetsMu.Lock()
	defer s.assetsMu.Unlock()

	existing, err := s.repo.InventoryItem(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := assets.UpdateInventoryItem(existing, in, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.PutInventoryItem(r.Context(), item); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := assetIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.repo.DeleteInventoryItem(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
