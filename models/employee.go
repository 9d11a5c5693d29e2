package models

type Employee struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Role        string       `json:"role"`
	JoiningDate string       `json:"joining_date"`
	Designation string       `json:"designation"`
	Department  string       `json:"department"`
	HourlyRate  NumberString `json:"hourly_rate"`
	User        *struct {
		Roles []struct {
			Name string `json:"name"`
		} `json:"roles"`
	} `json:"user,omitempty"`
}

// RoleName prefers the role attached to the linked user account.
func (e Employee) RoleName() string {
	if e.User != nil && len(e.User.Roles) > 0 {
		return e.User.Roles[0].Name
	}
	return e.Role
}

type EmployeePayload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	JoiningDate string `json:"joining_date"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	HourlyRate  string `json:"hourly_rate"`
}
