package dto

import "taskboard/app/models"

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"required,oneof='Pending' 'In Progress' 'Completed'"`
}

// UpdateTaskRequest carries partial fields; nil means leave unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof='Pending' 'In Progress' 'Completed'"`
}

type ListTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}
