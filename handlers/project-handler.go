package handlers

import (
	"net/http"

	"rama-crm/models"
	"rama-crm/viewmodel"
)

type ProjectHandler struct {
	detail     *viewmodel.ProjectDetail
	list       *viewmodel.ProjectList
	edit       *viewmodel.ProjectEdit
	assignment *viewmodel.Assignment
	mine       *viewmodel.MyProjects
	newTask    *viewmodel.TaskCreate
}

func NewProjectHandler(detail *viewmodel.ProjectDetail, list *viewmodel.ProjectList, edit *viewmodel.ProjectEdit,
	assignment *viewmodel.Assignment, mine *viewmodel.MyProjects, newTask *viewmodel.TaskCreate) *ProjectHandler {
	return &ProjectHandler{detail: detail, list: list, edit: edit, assignment: assignment, mine: mine, newTask: newTask}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	err := h.list.Load(r.Context())
	respond(w, h.list.Rows(), err)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	err := h.list.Delete(r.Context(), id)
	respond(w, h.list.Rows(), err)
}

func (h *ProjectHandler) GetProjectDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	err := h.detail.Load(r.Context(), id)
	respond(w, h.detail.View(), err)
}

type statusRequest struct {
	Status models.TaskStatus `json:"status"`
}

func (h *ProjectHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	taskID, okTask := pathID(r, "taskId")
	if !ok || !okTask {
		badID(w)
		return
	}
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	err := h.detail.ChangeStatus(r.Context(), projectID, taskID, req.Status)
	respond(w, h.detail.View(), err)
}

func (h *ProjectHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	taskID, okTask := pathID(r, "taskId")
	if !ok || !okTask {
		badID(w)
		return
	}
	err := h.detail.DeleteTask(r.Context(), projectID, taskID)
	respond(w, h.detail.View(), err)
}

// NewProjectForm opens an empty project form.
func (h *ProjectHandler) NewProjectForm(w http.ResponseWriter, r *http.Request) {
	err := h.edit.Open(r.Context(), 0)
	respond(w, h.edit.View(), err)
}

func (h *ProjectHandler) EditProjectForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	err := h.edit.Open(r.Context(), id)
	respond(w, h.edit.View(), err)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var draft viewmodel.ProjectDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	err := h.edit.SubmitProjectEdit(r.Context(), 0, draft)
	respond(w, h.edit.View(), err)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	var draft viewmodel.ProjectDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	err := h.edit.SubmitProjectEdit(r.Context(), id, draft)
	respond(w, h.edit.View(), err)
}

func (h *ProjectHandler) OpenAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	err := h.assignment.Open(r.Context(), id)
	respond(w, h.assignment.View(), err)
}

func (h *ProjectHandler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	var draft viewmodel.AssignmentDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	err := h.assignment.SubmitAssignment(r.Context(), id, draft)
	respond(w, h.assignment.View(), err)
}

// ListMyProjects is the senior's project board.
func (h *ProjectHandler) ListMyProjects(w http.ResponseWriter, r *http.Request) {
	err := h.mine.Load(r.Context())
	respond(w, h.mine.View(), err)
}

func (h *ProjectHandler) NewTaskForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	err := h.newTask.Open(r.Context(), id)
	respond(w, h.newTask.View(), err)
}

func (h *ProjectHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badID(w)
		return
	}
	var draft viewmodel.TaskDraft
	if !decodeBody(w, r, &draft) {
		return
	}
	err := h.newTask.Submit(r.Context(), id, draft)
	respond(w, h.newTask.View(), err)
}
