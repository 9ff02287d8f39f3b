package identity

import (
	"slices"
	"strings"
)

// Permissions is the permission record computed by the server for the current user.
type Permissions struct {
	CanEdit            bool `json:"can_edit" yaml:"can_edit"`
	IsAdmin            bool `json:"is_admin" yaml:"is_admin"`
	IsPI               bool `json:"is_pi" yaml:"is_pi"`
	IsBioinformatician bool `json:"is_bioinformatician" yaml:"is_bioinformatician"`
	IsViewer           bool `json:"is_viewer" yaml:"is_viewer"`
	IsEditor           bool `json:"is_editor" yaml:"is_editor"`
}

// User is the profile returned by the current-user endpoint. A fetched User is
// never modified; a new fetch replaces it.
type User struct {
	ID          int64       `json:"id" yaml:"id"`
	Username    string      `json:"username" yaml:"username"`
	Email       string      `json:"email" yaml:"email"`
	FirstName   string      `json:"first_name" yaml:"first_name"`
	LastName    string      `json:"last_name" yaml:"last_name"`
	IsSuperuser bool        `json:"is_superuser" yaml:"is_superuser"`
	Groups      []string    `json:"groups" yaml:"groups"`
	Permissions Permissions `json:"permissions" yaml:"permissions"`
}

// DisplayName returns "First Last", falling back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}

// InGroup reports whether the user belongs to the named group.
func (u *User) InGroup(name string) bool {
	return u != nil && slices.Contains(u.Groups, name)
}

// CanEdit reports whether edit-capable UI should be enabled.
func (u *User) CanEdit() bool {
	return u != nil && u.Permissions.CanEdit
}

// CanManageProjectLeads reports whether the project-lead administration
// screens are available: admins and bioinformaticians only.
func (u *User) CanManageProjectLeads() bool {
	return u != nil && (u.Permissions.IsAdmin || u.Permissions.IsBioinformatician)
}

// Roles lists the permission flags that are set, in a stable order.
func (u *User) Roles() []string {
	if u == nil {
		return nil
	}
	var roles []string
	p := u.Permissions
	for _, r := range []struct {
		name string
		set  bool
	}{
		{"admin", p.IsAdmin},
		{"pi", p.IsPI},
		{"bioinformatician", p.IsBioinformatician},
		{"editor", p.IsEditor},
		{"viewer", p.IsViewer},
	} {
		if r.set {
			roles = append(roles, r.name)
		}
	}
	return roles
}
