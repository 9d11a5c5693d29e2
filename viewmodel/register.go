package viewmodel

import (
	"context"
	"strings"
	"sync"

	"rama-crm/logging"
	"rama-crm/menu"
	"rama-crm/models"
	"rama-crm/notify"
)

type RegisterSource interface {
	Register(ctx context.Context, payload models.Registration) error
}

type RegisterDraft struct {
	Name     string `json:"name" validate:"filled"`
	Email    string `json:"email" validate:"filled,email"`
	Password string `json:"password" validate:"filled"`
	Role     string `json:"role" validate:"filled,user_role"`
}

var registerMessages = messages{
	"name":     {"filled": "The name field is required."},
	"email":    {"filled": "The email field is required.", "email": "The email must be a valid email address."},
	"password": {"filled": "The password field is required."},
	"role":     {"filled": "The role field is required.", "user_role": "The selected role is invalid."},
}

var registerRoles = []menu.Role{menu.RoleAdmin, menu.RoleTeamLead, menu.RoleSenior, menu.RoleJunior}

type RegisterView struct {
	Draft       RegisterDraft `json:"draft"`
	Errors      FieldErrors   `json:"errors"`
	RoleOptions []Option      `json:"roleOptions"`
	Registered  bool          `json:"registered"`
}

// Register is the sign-up form. Registered turns true once the account
// exists and the screen should move on to sign-in.
type Register struct {
	mu         sync.Mutex
	svc        RegisterSource
	ui         UI
	draft      RegisterDraft
	errors     FieldErrors
	registered bool
}

func NewRegister(svc RegisterSource, ui UI) *Register {
	return &Register{svc: svc, ui: ui, errors: FieldErrors{}}
}

func (g *Register) Submit(ctx context.Context, draft RegisterDraft) error {
	errs := check(draft, registerMessages)

	g.mu.Lock()
	g.draft = draft
	g.registered = false
	if len(errs) > 0 {
		g.errors = errs
	}
	g.mu.Unlock()
	if len(errs) > 0 {
		return asValidationError(errs)
	}

	payload := models.Registration{
		Name:     strings.TrimSpace(draft.Name),
		Email:    strings.TrimSpace(draft.Email),
		Password: draft.Password,
		Role:     menu.ParseRole(draft.Role).String(),
	}
	done := g.ui.busy()
	err := g.svc.Register(ctx, payload)
	done()
	if err != nil {
		logging.Logger.Warnf("Event ID: REGISTER_FAILED, Description: %s: %v", payload.Email, err)
		return g.ui.settle(err, func(fields FieldErrors) {
			g.mu.Lock()
			g.errors = fields
			g.mu.Unlock()
		})
	}

	g.mu.Lock()
	g.draft = RegisterDraft{}
	g.errors = FieldErrors{}
	g.registered = true
	g.mu.Unlock()
	logging.Logger.Infof("Event ID: REGISTER_SUCCESS, Description: %s registered as %s", payload.Email, payload.Role)
	notify.Success(g.ui.Notifier, "User registered successfully!")
	return nil
}

// View never echoes the password back.
func (g *Register) View() RegisterView {
	g.mu.Lock()
	defer g.mu.Unlock()

	opts := make([]Option, 0, len(registerRoles))
	for _, r := range registerRoles {
		opts = append(opts, Option{Value: r.String(), Label: r.Label()})
	}
	draft := g.draft
	draft.Password = ""
	return RegisterView{
		Draft:       draft,
		Errors:      g.errors.clone(),
		RoleOptions: opts,
		Registered:  g.registered,
	}
}
