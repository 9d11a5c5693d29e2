package models

// Member is the read-only user summary used for display and selection lists.
type Member struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Designation string `json:"designation,omitempty"`
	Status      string `json:"status,omitempty"`
}
