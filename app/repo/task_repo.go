package repo

import (
	"strings"

	"taskboard/app/models"

	"gorm.io/gorm"
)

// Scope restricts a task query to a single owner, or spans all owners
// when All is set. The zero value scopes to owner 0 and matches nothing.
type Scope struct {
	OwnerID uint
	All     bool
}

type TaskQuery struct {
	Scope  Scope
	Search string // case-insensitive substring match on title
	Status string // exact enum match
	Offset int
	Limit  int
}

type TaskRepository struct{ db *gorm.DB }

func NewTaskRepository(db *gorm.DB) *TaskRepository { return &TaskRepository{db: db} }

func (r *TaskRepository) Create(t *models.Task) error { return r.db.Create(t).Error }

func (r *TaskRepository) FindByID(id uint) (*models.Task, error) {
	var t models.Task
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) Save(t *models.Task) error { return r.db.Save(t).Error }

// Delete removes the task and reports how many rows matched.
func (r *TaskRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&models.Task{}, id)
	return res.RowsAffected, res.Error
}

// List returns one page of matching tasks, newest first, plus the total
// match count across all pages.
func (r *TaskRepository) List(q TaskQuery) ([]models.Task, int64, error) {
	tx := r.db.Model(&models.Task{})
	if !q.Scope.All {
		tx = tx.Where("owner_id = ?", q.Scope.OwnerID)
	}
	if q.Search != "" {
		tx = tx.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.Search)+"%")
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	err := tx.Order("created_at DESC, id DESC").Offset(q.Offset).Limit(q.Limit).Find(&tasks).Error
	return tasks, total, err
}
