package viewmodel

import (
	"context"
	"strings"
	"sync"

	"rama-crm/logging"
	"rama-crm/models"
	"rama-crm/notify"
)

type AuthSource interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Logout(ctx context.Context) error
}

// SessionWriter is the part of the session store the login flow writes to.
type SessionWriter interface {
	Set(user models.User, token string) error
	Clear() error
}

var loginMessages = messages{
	"email":    {"filled": "The email field is required."},
	"password": {"filled": "The password field is required."},
}

type LoginView struct {
	Email  string      `json:"email"`
	Errors FieldErrors `json:"errors"`
}

// Login is the sign-in form and the logout action.
type Login struct {
	mu      sync.Mutex
	svc     AuthSource
	session SessionWriter
	ui      UI
	email   string
	errors  FieldErrors
}

func NewLogin(svc AuthSource, session SessionWriter, ui UI) *Login {
	return &Login{svc: svc, session: session, ui: ui, errors: FieldErrors{}}
}

// Submit signs in and stores the returned user and token. The password is
// never kept.
func (l *Login) Submit(ctx context.Context, creds models.Credentials) (*models.User, error) {
	errs := check(creds, loginMessages)

	l.mu.Lock()
	l.email = creds.Email
	if len(errs) > 0 {
		l.errors = errs
	}
	l.mu.Unlock()
	if len(errs) > 0 {
		return nil, asValidationError(errs)
	}

	creds.Email = strings.TrimSpace(creds.Email)
	done := l.ui.busy()
	resp, err := l.svc.Login(ctx, creds)
	done()
	if err != nil {
		return nil, l.ui.settle(err, func(fields FieldErrors) {
			l.mu.Lock()
			l.errors = fields
			l.mu.Unlock()
		})
	}

	if err := l.session.Set(resp.User, resp.Token); err != nil {
		logging.Logger.Errorf("Event ID: SESSION_SAVE_FAILED, Description: %v", err)
		notify.Error(l.ui.Notifier, "Failed to save session")
		return nil, classify(err)
	}

	l.mu.Lock()
	l.errors = FieldErrors{}
	l.mu.Unlock()
	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: User %s signed in as %s", resp.User.Email, resp.User.Role)
	notify.Success(l.ui.Notifier, "User Login successfully!")

	user := resp.User
	return &user, nil
}

// Logout tells the API and clears the local session. The session is cleared
// even when the API call fails.
func (l *Login) Logout(ctx context.Context) error {
	done := l.ui.busy()
	apiErr := l.svc.Logout(ctx)
	done()
	if apiErr != nil {
		logging.Logger.Warnf("Event ID: LOGOUT_REMOTE_FAILED, Description: %v", apiErr)
	}

	if err := l.session.Clear(); err != nil {
		notify.Error(l.ui.Notifier, "Failed to clear session")
		return classify(err)
	}
	notify.Success(l.ui.Notifier, "Logged out successfully!")
	return nil
}

func (l *Login) View() LoginView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoginView{Email: l.email, Errors: l.errors.clone()}
}
