package classify

import (
	"strings"

	"github.com/metal-toolbox/fleetdash/internal/model"
)

// ITAdmin is the owner recorded for devices enrolled by a provisioning account.
const ITAdmin = "IT Admin"

// User is a directory entry.
type User struct {
	ComputingID string
	Name        string
	Email       string
	Department  string
}

// Directory indexes users by computing ID and email, both case-insensitive.
type Directory struct {
	byID    map[string]User
	byEmail map[string]User
	// provisioners are the accounts IT uses to enroll devices.
	provisioners map[string]struct{}
}

// NewDirectory returns a Directory holding the given users.
func NewDirectory(users ...User) *Directory {
	d := &Directory{
		byID:         map[string]User{},
		byEmail:      map[string]User{},
		provisioners: map[string]struct{}{},
	}

	for _, u := range users {
		d.Add(u)
	}

	return d
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Add inserts u, filling in attributes missing from an existing entry with the same
// computing ID or email.
func (d *Directory) Add(u User) {
	id, email := key(u.ComputingID), key(u.Email)
	if id == "" && email != "" {
		id, _, _ = strings.Cut(email, "@")
	}

	if id == "" {
		return
	}

	if existing, ok := d.byID[id]; ok {
		u = mergeUser(existing, u)
	} else if existing, ok := d.byEmail[email]; ok && email != "" {
		u = mergeUser(existing, u)
	}

	if u.ComputingID == "" {
		u.ComputingID = id
	}

	d.byID[key(u.ComputingID)] = u

	if u.Email != "" {
		d.byEmail[key(u.Email)] = u
	}
}

func mergeUser(existing, update User) User {
	if existing.ComputingID == "" {
		existing.ComputingID = update.ComputingID
	}

	if existing.Name == "" {
		existing.Name = update.Name
	}

	if existing.Email == "" {
		existing.Email = update.Email
	}

	if existing.Department == "" {
		existing.Department = update.Department
	}

	return existing
}

// AddProvisioner registers an enrollment account whose devices are owned by IT.
func (d *Directory) AddProvisioner(account string) {
	if k := key(account); k != "" {
		d.provisioners[k] = struct{}{}
	}
}

// Len returns the number of users.
func (d *Directory) Len() int {
	return len(d.byID)
}

// ByComputingID returns the user with the given computing ID.
func (d *Directory) ByComputingID(id string) (User, bool) {
	u, ok := d.byID[key(id)]
	return u, ok
}

// ByEmail returns the user with the given email address.
func (d *Directory) ByEmail(email string) (User, bool) {
	u, ok := d.byEmail[key(email)]
	return u, ok
}

// MatchDeviceName returns the user whose computing ID is embedded in a device name
// following the <prefix>-<computingID>-<suffix> convention.
//
// Inner tokens are tried left to right, the first known computing ID wins.
func (d *Directory) MatchDeviceName(name string) (User, bool) {
	parts := strings.Split(strings.TrimSpace(name), "-")
	if len(parts) < 3 {
		return User{}, false
	}

	for _, token := range parts[1 : len(parts)-1] {
		if u, ok := d.ByComputingID(token); ok {
			return u, true
		}
	}

	return User{}, false
}

func (d *Directory) isProvisioner(account string) bool {
	_, ok := d.provisioners[key(account)]
	return ok
}

// Hint is the user information a management platform export carries for a device.
type Hint struct {
	Username string
	Name     string
	Email    string
}

func (h Hint) empty() bool {
	return strings.TrimSpace(h.Username) == "" && strings.TrimSpace(h.Name) == "" && strings.TrimSpace(h.Email) == ""
}

// Owner is the resolved primary owner of a device.
type Owner struct {
	Name       string
	Email      string
	Department string
	// ExportUser is the platform reported user of an unassigned device.
	ExportUser string
	// Matched is true when the owner was found in the directory.
	Matched bool
}

func ownerFromUser(u User) Owner {
	name := u.Name
	if name == "" {
		name = u.ComputingID
	}

	return Owner{Name: name, Email: u.Email, Department: u.Department, Matched: true}
}

// ResolveOwner returns the primary owner of a device.
//
// The device name convention is tried first, then the export user by email and
// username. Devices enrolled by a provisioning account are owned by IT, anything
// else left over is Unassigned with the export user kept as ExportUser.
func (d *Directory) ResolveOwner(deviceName string, hint Hint) Owner {
	if u, ok := d.MatchDeviceName(deviceName); ok {
		return ownerFromUser(u)
	}

	if u, ok := d.ByEmail(hint.Email); ok && hint.Email != "" {
		return ownerFromUser(u)
	}

	username, _, _ := strings.Cut(hint.Username, "@")
	if u, ok := d.ByComputingID(username); ok && username != "" {
		return ownerFromUser(u)
	}

	if u, ok := d.ByEmail(hint.Username); ok && hint.Username != "" {
		return ownerFromUser(u)
	}

	if d.isProvisioner(hint.Username) || d.isProvisioner(hint.Email) {
		return Owner{Name: ITAdmin}
	}

	return Owner{Name: model.Unassigned, ExportUser: hint.display()}
}

// display returns the export user as "Name <email>", or whichever part is present.
func (h Hint) display() string {
	if h.empty() {
		return ""
	}

	name := strings.TrimSpace(h.Name)
	if name == "" {
		name = strings.TrimSpace(h.Username)
	}

	email := strings.TrimSpace(h.Email)

	switch {
	case name == "":
		return email
	case email == "" || strings.EqualFold(name, email):
		return name
	default:
		return name + " <" + email + ">"
	}
}
