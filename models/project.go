package models

type Project struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline"`
	Status      string   `json:"status,omitempty"`
	CreatedBy   *Member  `json:"created_by,omitempty"`
	Members     []Member `json:"members,omitempty"`
	Tasks       []Task   `json:"tasks,omitempty"`
}

// Flag values tell the projects endpoint which part of a project a PUT replaces.
const (
	FlagProjectDetails = 1
	FlagAssignment     = 2
)

// ProjectPayload is the body of a project create or details update.
type ProjectPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	ProjectID   int64  `json:"project_id,omitempty"`
	Flag        int    `json:"flag"`
}
