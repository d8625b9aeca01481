package ingest

import (
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/metal-toolbox/fleetdash/internal/classify"
)

// parseUsers returns the users of a directory export.
func parseUsers(data []byte) ([]classify.User, *multierror.Error, error) {
	t, err := parseTable(data)
	if err != nil {
		return nil, nil, err
	}

	idColumns := []string{"Computing ID", "ComputingID", "User ID", "Username"}
	emailColumns := []string{"Email", "Email Address", "Mail"}

	if err := t.require(append(append([]string{}, idColumns...), emailColumns...)); err != nil {
		return nil, nil, err
	}

	var warnings *multierror.Error

	users := make([]classify.User, 0, len(t.rows))

	for _, r := range t.rows {
		u := classify.User{
			ComputingID: r.get(idColumns...),
			Name:        r.get("Name", "Display Name", "Full Name"),
			Email:       r.get(emailColumns...),
			Department:  r.get("Department"),
		}

		if u.ComputingID == "" && u.Email == "" {
			warnings = multierror.Append(warnings, r.skip("no computing ID or email"))
			continue
		}

		users = append(users, u)
	}

	return users, warnings, nil
}

// parseCoreView returns the users of a CoreView tenant export, the computing ID is the UPN local part.
func parseCoreView(data []byte) ([]classify.User, *multierror.Error, error) {
	t, err := parseTable(data)
	if err != nil {
		return nil, nil, err
	}

	upnColumns := []string{"UserPrincipalName", "User Principal Name", "UPN"}

	if err := t.require(upnColumns); err != nil {
		return nil, nil, err
	}

	var warnings *multierror.Error

	users := make([]classify.User, 0, len(t.rows))

	for _, r := range t.rows {
		upn := r.get(upnColumns...)
		if upn == "" {
			warnings = multierror.Append(warnings, r.skip("no user principal name"))
			continue
		}

		id, _, _ := strings.Cut(upn, "@")

		users = append(users, classify.User{
			ComputingID: id,
			Name:        r.get("DisplayName", "Display Name"),
			Email:       upn,
			Department:  r.get("Department"),
		})
	}

	return users, warnings, nil
}
