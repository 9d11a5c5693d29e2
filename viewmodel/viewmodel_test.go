package viewmodel

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rama-crm/apiclient"
	"rama-crm/models"
	"rama-crm/notify"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUI() (UI, *notify.Center) {
	c := notify.NewCenter()
	return UI{Notifier: c, Loader: c}, c
}

func newAPI(t *testing.T, r *mux.Router) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return apiclient.New(server.URL, nil, apiclient.Options{})
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func lastMessage(t *testing.T, c *notify.Center) notify.Notification {
	t.Helper()
	n, ok := c.Last()
	require.True(t, ok, "expected a notification")
	return n
}

func assertBalancedBusy(t *testing.T, c *notify.Center) {
	t.Helper()
	shows, hides := c.BusyCalls()
	assert.Equal(t, shows, hides)
	assert.False(t, c.Busy())
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
}

func TestStatusAndPriorityDisplay(t *testing.T) {
	assert.Equal(t, "Pending", StatusLabel(models.StatusPending))
	assert.Equal(t, ColorWarning, StatusColor(models.StatusPending))
	assert.Equal(t, "In Progress", StatusLabel(models.StatusInProgress))
	assert.Equal(t, "Completed", StatusLabel(models.StatusCompleted))
	assert.Equal(t, ColorSuccess, StatusColor(models.StatusCompleted))
	assert.Equal(t, "High", PriorityLabel(models.PriorityHigh))
	assert.Equal(t, ColorError, PriorityColor(models.PriorityHigh))
}

func TestUnknownStatusAndPriorityFallBack(t *testing.T) {
	assert.Equal(t, "On Hold", StatusLabel("on_hold"))
	assert.Equal(t, ColorDefault, StatusColor("on_hold"))
	assert.Equal(t, "Unknown", StatusLabel(""))
	assert.Equal(t, "Urgent", PriorityLabel("URGENT"))
	assert.Equal(t, ColorDefault, PriorityColor("urgent"))
	assert.Equal(t, "Unknown", PriorityLabel(""))
}

func TestStatusOptionsOfferEveryStatus(t *testing.T) {
	opts := StatusOptions()
	require.Len(t, opts, 4)
	assert.Equal(t, Option{Value: "pending", Label: "Pending"}, opts[0])
	assert.Equal(t, Option{Value: "cancelled", Label: "Cancelled"}, opts[3])
	assert.Len(t, PriorityOptions(), 3)
}

func TestSettleBranches(t *testing.T) {
	ui, center := newUI()

	var got FieldErrors
	err := ui.settle(&apiclient.ValidationError{Fields: map[string][]string{"title": {"Too long."}}}, func(f FieldErrors) { got = f })
	assert.IsType(t, &apiclient.ValidationError{}, err)
	assert.Equal(t, FieldErrors{"title": {"Too long."}}, got)
	assert.Empty(t, center.Notifications())

	got = nil
	err = ui.settle(&apiclient.AuthError{Message: "Unauthenticated."}, func(f FieldErrors) { got = f })
	assert.IsType(t, &apiclient.AuthError{}, err)
	assert.Nil(t, got)
	assert.Equal(t, "Unauthenticated.", lastMessage(t, center).Message)

	err = ui.settle(&apiclient.GenericError{Message: ""}, func(f FieldErrors) { got = f })
	assert.IsType(t, &apiclient.GenericError{}, err)
	assert.Nil(t, got)
	n := lastMessage(t, center)
	assert.Equal(t, apiclient.FallbackMessage, n.Message)
	assert.Equal(t, notify.SeverityError, n.Severity)
	assert.Equal(t, notify.DefaultPosition, n.Position)
}

func TestCheckUsesJSONNamesAndFallbackMessage(t *testing.T) {
	form := struct {
		DueDate string `json:"due_date" validate:"filled,isodate"`
		Rate    string `json:"hourly_rate,omitempty" validate:"amount"`
	}{DueDate: "31/12/2024", Rate: "-3"}

	errs := check(form, messages{"due_date": {"isodate": "Bad date."}})
	assert.Equal(t, FieldErrors{
		"due_date":    {"Bad date."},
		"hourly_rate": {"The hourly rate field is invalid."},
	}, errs)

	form.DueDate, form.Rate = "2024-12-31", "12.5"
	assert.Empty(t, check(form, nil))
}
