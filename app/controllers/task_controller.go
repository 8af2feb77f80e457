package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"taskboard/app/dto"
	"taskboard/app/httperr"
	"taskboard/app/middleware"
	"taskboard/app/models"
	"taskboard/app/services"
)

type TaskController struct{ Tasks *services.TaskService }

func NewTaskController(tasks *services.TaskService) *TaskController {
	return &TaskController{Tasks: tasks}
}

// List serves both GET /tasks and GET /tasks/admin/all. Scope selection
// happens in the service from the caller's role, so the two routes share
// one implementation; the admin route merely sits behind the role gate.
func (c *TaskController) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httperr.Write(w, httperr.Unauthenticated())
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	res, err := c.Tasks.List(ident, services.ListOptions{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}
	tasks := res.Tasks
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, dto.ListTasksResponse{Tasks: tasks, Total: res.Total, Page: res.Page, Pages: res.Pages})
}

func (c *TaskController) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httperr.Write(w, httperr.Unauthenticated())
		return
	}
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, httperr.Validation("invalid request body"))
		return
	}
	if err := dto.Validate(&req); err != nil {
		httperr.Write(w, httperr.Validation(err.Error()))
		return
	}

	t, err := c.Tasks.Create(ident, req.Title, req.Description, req.Status)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (c *TaskController) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httperr.Write(w, httperr.Unauthenticated())
		return
	}
	id, err := taskID(r)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, httperr.Validation("invalid request body"))
		return
	}
	if err := dto.Validate(&req); err != nil {
		httperr.Write(w, httperr.Validation(err.Error()))
		return
	}

	t, err := c.Tasks.Update(ident, id, services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		httperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (c *TaskController) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httperr.Write(w, httperr.Unauthenticated())
		return
	}
	id, err := taskID(r)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	if err := c.Tasks.Delete(ident, id); err != nil {
		httperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Task deleted"})
}

func taskID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, httperr.Validation("invalid task id")
	}
	return uint(id), nil
}
