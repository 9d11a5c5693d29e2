// Package menu resolves the navigation entries shown for a role.
package menu

import "strings"

type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleTeamLead
	RoleSenior
	RoleJunior
)

func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "tl":
		return RoleTeamLead
	case "senior":
		return RoleSenior
	case "junior":
		return RoleJunior
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleTeamLead:
		return "tl"
	case RoleSenior:
		return "senior"
	case RoleJunior:
		return "junior"
	default:
		return "unknown"
	}
}

// Label is the human readable role name used in selection lists.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleTeamLead:
		return "Team Lead"
	case RoleSenior:
		return "Senior"
	case RoleJunior:
		return "Junior"
	default:
		return "Unknown"
	}
}

type Entry struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
}

// LogoutPath is handled by the logout flow instead of navigation.
const LogoutPath = "/logout"

var (
	dashboard = Entry{Label: "Dashboard", Icon: "Dashboard", Path: "/"}
	profile   = Entry{Label: "Profile", Icon: "Person", Path: "/profile"}
	logout    = Entry{Label: "Logout", Icon: "Logout", Path: LogoutPath}
)

// Resolve returns the ordered menu of role. Unknown roles get an empty list.
func Resolve(role string) []Entry {
	return ForRole(ParseRole(role))
}

func ForRole(role Role) []Entry {
	switch role {
	case RoleAdmin:
		return []Entry{
			dashboard,
			{Label: "Employee", Icon: "People", Path: "/employees"},
			{Label: "Projects", Icon: "Folder", Path: "/projects"},
			logout,
		}
	case RoleTeamLead:
		return []Entry{
			dashboard,
			{Label: "Projects", Icon: "Folder", Path: "/projects"},
			profile,
			logout,
		}
	case RoleSenior:
		return []Entry{
			dashboard,
			{Label: "Projects", Icon: "Folder", Path: "/senior/projects"},
			{Label: "My Tasks", Icon: "Assignment", Path: "/senior/my-tasks"},
			profile,
			logout,
		}
	case RoleJunior:
		return []Entry{
			dashboard,
			{Label: "My Tasks", Icon: "Assignment", Path: "/junior/my-tasks"},
			profile,
			logout,
		}
	default:
		return []Entry{}
	}
}
