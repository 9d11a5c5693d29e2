package handlers

import (
	"net/http"
	"time"

	"rama-crm/menu"
	"rama-crm/models"
	"rama-crm/notify"
	"rama-crm/viewmodel"
)

type AuthHandler struct {
	login    *viewmodel.Login
	register *viewmodel.Register
	session  SessionSource
	center   *notify.Center
}

func NewAuthHandler(login *viewmodel.Login, register *viewmodel.Register, session SessionSource, center *notify.Center) *AuthHandler {
	return &AuthHandler{login: login, register: register, session: session, center: center}
}

type sessionView struct {
	Authenticated bool         `json:"authenticated"`
	Role          string       `json:"role"`
	Menu          []menu.Entry `json:"menu"`
}

func (h *AuthHandler) currentSession() sessionView {
	authenticated := h.session.Authenticated(time.Now())
	role := menu.RoleUnknown
	if authenticated {
		role = sessionRole(h.session)
	}
	return sessionView{
		Authenticated: authenticated,
		Role:          role.String(),
		Menu:          menu.ForRole(role),
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeBody(w, r, &creds) {
		return
	}
	_, err := h.login.Submit(r.Context(), creds)
	if err != nil {
		respond(w, h.login.View(), err)
		return
	}
	respond(w, h.currentSession(), nil)
}

func (h *AuthHandler) GetRegisterForm(w http.ResponseWriter, r *http.Request) {
	respond(w, h.register.View(), nil)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var draft viewmodel.RegisterDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	err := h.register.Submit(r.Context(), draft)
	respond(w, h.register.View(), err)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.login.Logout(r.Context())
	respond(w, h.currentSession(), err)
}

// GetSession reports the signed-in role and its menu. It is open to anonymous
// callers, who get an empty menu.
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	respond(w, h.currentSession(), nil)
}

type uiView struct {
	Busy          bool                  `json:"busy"`
	Notifications []notify.Notification `json:"notifications"`
}

func (h *AuthHandler) GetUIState(w http.ResponseWriter, r *http.Request) {
	respond(w, uiView{Busy: h.center.Busy(), Notifications: h.center.Notifications()}, nil)
}
