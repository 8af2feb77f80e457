package services

import (
	"errors"
	"strings"

	"taskboard/app/httperr"
	"taskboard/app/models"
	"taskboard/app/repo"
	"taskboard/app/token"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 50
)

type TaskService struct{ tasks *repo.TaskRepository }

func NewTaskService(tasks *repo.TaskRepository) *TaskService { return &TaskService{tasks: tasks} }

type ListOptions struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type ListResult struct {
	Tasks []models.Task
	Total int64
	Page  int
	Pages int
}

// scopeFor selects the query scope from the caller's role: admins span
// all owners, everyone else is pinned to their own tasks.
func scopeFor(ident token.Identity) repo.Scope {
	if ident.IsAdmin() {
		return repo.Scope{All: true}
	}
	return repo.Scope{OwnerID: ident.UserID}
}

// List returns one page of the caller's visible tasks, newest first.
// Page defaults to 1, limit to DefaultPageSize clamped to MaxPageSize.
func (s *TaskService) List(ident token.Identity, opts ListOptions) (*ListResult, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	tasks, total, err := s.tasks.List(repo.TaskQuery{
		Scope:  scopeFor(ident),
		Search: opts.Search,
		Status: opts.Status,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, httperr.Internal(err)
	}

	// pages = ceil(total/limit); an empty match set has zero pages
	pages := int((total + int64(limit) - 1) / int64(limit))
	return &ListResult{Tasks: tasks, Total: total, Page: page, Pages: pages}, nil
}

// Create stores a task owned by the caller. Any owner the client tried
// to supply is ignored; ownership is fixed here and never changes.
func (s *TaskService) Create(ident token.Identity, title, description, status string) (*models.Task, error) {
	t := &models.Task{Title: title, Description: description, Status: status, OwnerID: ident.UserID}
	if err := s.tasks.Create(t); err != nil {
		return nil, httperr.Internal(err)
	}
	return t, nil
}

// TaskPatch carries partial updates; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

// Update applies a patch to a task the caller may touch. Non-admins get
// the same not-found answer for missing tasks and other users' tasks, so
// the API never confirms that a foreign id exists.
func (s *TaskService) Update(ident token.Identity, id uint, patch TaskPatch) (*models.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, httperr.Validation("title must not be empty")
	}
	t, err := s.visibleTask(ident, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if err := s.tasks.Save(t); err != nil {
		return nil, httperr.Internal(err)
	}
	return t, nil
}

// Delete removes a task under the same visibility rule as Update.
func (s *TaskService) Delete(ident token.Identity, id uint) error {
	if _, err := s.visibleTask(ident, id); err != nil {
		return err
	}
	n, err := s.tasks.Delete(id)
	if err != nil {
		return httperr.Internal(err)
	}
	if n == 0 {
		return httperr.NotFound("task not found")
	}
	return nil
}

func (s *TaskService) visibleTask(ident token.Identity, id uint) (*models.Task, error) {
	t, err := s.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("task not found")
		}
		return nil, httperr.Internal(err)
	}
	if !ident.IsAdmin() && t.OwnerID != ident.UserID {
		return nil, httperr.NotFound("task not found")
	}
	return t, nil
}
