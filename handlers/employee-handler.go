package handlers

import (
	"net/http"

	"rama-crm/viewmodel"
)

type EmployeeHandler struct {
	list *viewmodel.EmployeeList
	form *viewmodel.EmployeeForm
}

func NewEmployeeHandler(list *viewmodel.EmployeeList, form *viewmodel.EmployeeForm) *EmployeeHandler {
	return &EmployeeHandler{list: list, form: form}
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	err := h.list.Load(r.Context())
	respond(w, h.list.Rows(), err)
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	err := h.list.Delete(r.Context(), id)
	respond(w, h.list.Rows(), err)
}

func (h *EmployeeHandler) NewEmployeeForm(w http.ResponseWriter, r *http.Request) {
	err := h.form.Open(r.Context(), 0)
	respond(w, h.form.View(), err)
}

func (h *EmployeeHandler) EditEmployeeForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	err := h.form.Open(r.Context(), id)
	respond(w, h.form.View(), err)
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var draft viewmodel.EmployeeDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	err := h.form.Submit(r.Context(), 0, draft)
	respond(w, h.form.View(), err)
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	var draft viewmodel.EmployeeDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	err := h.form.Submit(r.Context(), id, draft)
	respond(w, h.form.View(), err)
}
