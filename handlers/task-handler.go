package handlers

import (
	"net/http"

	"rama-crm/viewmodel"
)

type TaskHandler struct {
	edit    *viewmodel.TaskEdit
	myTasks *viewmodel.MyTasks
}

func NewTaskHandler(edit *viewmodel.TaskEdit, myTasks *viewmodel.MyTasks) *TaskHandler {
	return &TaskHandler{edit: edit, myTasks: myTasks}
}

func (h *TaskHandler) EditTaskForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	err := h.edit.Load(r.Context(), id)
	respond(w, h.edit.View(), err)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	var draft viewmodel.TaskDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	err := h.edit.SubmitTaskEdit(r.Context(), id, draft)
	respond(w, h.edit.View(), err)
}

func (h *TaskHandler) CloseTaskForm(w http.ResponseWriter, r *http.Request) {
	h.edit.Close()
	respond(w, h.edit.View(), nil)
}

func (h *TaskHandler) GetMyTasks(w http.ResponseWriter, r *http.Request) {
	err := h.myTasks.Load(r.Context())
	respond(w, h.myTasks.View(), err)
}

func (h *TaskHandler) ChangeMyTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.myTasks.ChangeStatus(r.Context(), id, req.Status)
	respond(w, h.myTasks.View(), err)
}
