package models

// Assignment binds a set of users to a project for a date range. Every submit
// replaces the previous assignment of the project.
type Assignment struct {
	ProjectID     int64   `json:"project_id"`
	SelectedUsers []int64 `json:"selectedUsers"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	HourlyRate    string  `json:"hourly_rate"`
	Notes         string  `json:"notes"`
	Flag          int     `json:"flag"`
}

type AssignData struct {
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	HourlyRate NumberString `json:"hourly_rate"`
	Notes      string       `json:"notes"`
}

// UserList is the payload of the project user-list endpoint.
type UserList struct {
	Users       []Member    `json:"users"`
	AssignUsers []int64     `json:"assign_users"`
	AssignData  *AssignData `json:"assignData"`
}
