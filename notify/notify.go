package notify

import (
	"strings"
	"sync"
	"time"

	"rama-crm/logging"

	"github.com/sirupsen/logrus"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const DefaultPosition = "top-center"

type Notification struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	Position string    `json:"position"`
	Time     time.Time `json:"time"`
}

// Notifier shows a transient message. Fire and forget.
type Notifier interface {
	Notify(n Notification)
}

// Loader toggles the global busy indicator. Calls are paired per operation;
// there is no reference counting.
type Loader interface {
	ShowBusy()
	HideBusy()
}

const historySize = 50

// Center is the process-wide notification and loader state. It keeps the
// recent notifications for the renderer and mirrors them to the log.
type Center struct {
	mu      sync.Mutex
	history []Notification
	busy    bool
	shows   int
	hides   int
}

func NewCenter() *Center {
	return &Center{}
}

func (c *Center) Notify(n Notification) {
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	if n.Position == "" {
		n.Position = DefaultPosition
	}
	if n.Time.IsZero() {
		n.Time = time.Now()
	}

	c.mu.Lock()
	c.history = append(c.history, n)
	if len(c.history) > historySize {
		c.history = c.history[len(c.history)-historySize:]
	}
	c.mu.Unlock()

	logging.Logger.WithFields(logrus.Fields{
		"severity": n.Severity,
		"position": n.Position,
	}).Infof("Event ID: NOTIFICATION_%s, Description: %s", strings.ToUpper(string(n.Severity)), n.Message)
}

func (c *Center) ShowBusy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = true
	c.shows++
}

func (c *Center) HideBusy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.hides++
}

func (c *Center) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// BusyCalls returns how often the indicator was shown and hidden.
func (c *Center) BusyCalls() (shows, hides int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shows, c.hides
}

// Notifications returns a copy of the recent notifications, oldest first.
func (c *Center) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.history))
	copy(out, c.history)
	return out
}

// Last returns the most recent notification.
func (c *Center) Last() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == 0 {
		return Notification{}, false
	}
	return c.history[len(c.history)-1], true
}

// Success and Error are shorthands for the two severities used by the view
// models.
func Success(n Notifier, message string) {
	n.Notify(Notification{Message: message, Severity: SeveritySuccess, Position: DefaultPosition})
}

func Error(n Notifier, message string) {
	n.Notify(Notification{Message: message, Severity: SeverityError, Position: DefaultPosition})
}
