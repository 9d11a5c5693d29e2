package viewmodel

import (
	"strings"
	"unicode"

	"rama-crm/models"
)

// Color names follow the component library's palette; "default" is the
// neutral fallback for anything unrecognised.
const (
	ColorDefault = "default"
	ColorSuccess = "success"
	ColorWarning = "warning"
	ColorInfo    = "info"
	ColorError   = "error"
	ColorPrimary = "primary"
)

var projectStatusColors = map[string]string{
	"active":    ColorSuccess,
	"completed": ColorPrimary,
	"on_hold":   ColorWarning,
}

// ProjectStatusColor maps the free-form project status to a chip color.
func ProjectStatusColor(status string) string {
	if color, ok := projectStatusColors[status]; ok {
		return color
	}
	return ColorDefault
}

var statusLabels = map[models.TaskStatus]string{
	models.StatusPending:    "Pending",
	models.StatusInProgress: "In Progress",
	models.StatusCompleted:  "Completed",
	models.StatusCancelled:  "Cancelled",
}

var statusColors = map[models.TaskStatus]string{
	models.StatusPending:    ColorWarning,
	models.StatusInProgress: ColorInfo,
	models.StatusCompleted:  ColorSuccess,
	models.StatusCancelled:  ColorError,
}

var priorityLabels = map[models.Priority]string{
	models.PriorityLow:    "Low",
	models.PriorityMedium: "Medium",
	models.PriorityHigh:   "High",
}

var priorityColors = map[models.Priority]string{
	models.PriorityLow:    ColorSuccess,
	models.PriorityMedium: ColorWarning,
	models.PriorityHigh:   ColorError,
}

func StatusLabel(s models.TaskStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fallbackLabel(string(s))
}

func StatusColor(s models.TaskStatus) string {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return ColorDefault
}

func PriorityLabel(p models.Priority) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return fallbackLabel(string(p))
}

func PriorityColor(p models.Priority) string {
	if color, ok := priorityColors[p]; ok {
		return color
	}
	return ColorDefault
}

// fallbackLabel turns an unknown value like "on_hold" into "On Hold".
func fallbackLabel(raw string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(raw))
	if len(words) == 0 {
		return "Unknown"
	}
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatusOptions lists every status as a selectable target, whatever the
// current status is.
func StatusOptions() []Option {
	opts := make([]Option, 0, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		opts = append(opts, Option{Value: string(s), Label: StatusLabel(s)})
	}
	return opts
}

func PriorityOptions() []Option {
	opts := make([]Option, 0, len(models.Priorities))
	for _, p := range models.Priorities {
		opts = append(opts, Option{Value: string(p), Label: PriorityLabel(p)})
	}
	return opts
}
