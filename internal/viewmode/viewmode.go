// Package viewmode resolves who may edit a registration form right now.
//
// A form can be filled by the client themselves, by an admin on the client's
// behalf, taken over by the internal team, or handed back to the client by an
// admin. The three request flags are folded once into a single Mode so callers
// never recombine raw booleans.
package viewmode

type Role string

const (
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) IsStaff() bool { return r == RoleAdmin || r == RoleSuperadmin }

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// Flags are the fill-request side records of one draft.
type Flags struct {
	TeamFill            bool `json:"teamFill" bson:"team_fill"`
	ClientFillRequested bool `json:"clientFillRequested" bson:"client_fill_requested"`
}

type Mode int

const (
	// SelfService: the client edits their own form.
	SelfService Mode = iota
	// AdminOnBehalf: staff edits the form for a client.
	AdminOnBehalf
	// TeamFillActive: the internal team took the form over; the client is locked out.
	TeamFillActive
	// ClientFillRequested: staff asked the client to fill; staff is locked out.
	ClientFillRequested
)

func (m Mode) String() string {
	switch m {
	case SelfService:
		return "self-service"
	case AdminOnBehalf:
		return "admin-on-behalf"
	case TeamFillActive:
		return "team-fill-active"
	case ClientFillRequested:
		return "client-fill-requested"
	}
	return "unknown"
}

// FieldsDisabled reports whether the current viewer must see read-only fields.
func (m Mode) FieldsDisabled() bool {
	return m == TeamFillActive || m == ClientFillRequested
}

// AdminFilling reports whether a viewer fills forms on a client's behalf.
// Only the authenticated role decides this; a client is always self-service.
func AdminFilling(role Role) bool {
	return role.IsStaff()
}

// Resolve folds the request flags and the viewer into one mode.
func Resolve(f Flags, adminFilling bool) Mode {
	if adminFilling {
		if f.ClientFillRequested {
			return ClientFillRequested
		}
		return AdminOnBehalf
	}
	if f.TeamFill {
		return TeamFillActive
	}
	return SelfService
}
