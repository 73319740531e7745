package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

// TaskFilter narrows a user's task list. All set fields apply together
// (logical AND); Search alone matches either title or description.
type TaskFilter struct {
	Status   string // "completed", "active", or "" for all
	Category *uint
	Priority model.Priority
	Search   string
	Sort     string
}

// sortColumns is the allow-list of sort parameters. Anything else falls
// back to the default ordering instead of erroring.
var sortColumns = map[string]string{
	"title":       "title ASC",
	"-title":      "title DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
	"due_date":    "due_date ASC",
	"-due_date":   "due_date DESC",
}

const defaultOrder = "created_at DESC"

// OrderClause resolves the filter's sort parameter against the allow-list.
func (f TaskFilter) OrderClause() string {
	if clause, ok := sortColumns[f.Sort]; ok {
		return clause
	}
	return defaultOrder
}

// Stats holds the derived counts over a (possibly filtered) task view.
type Stats struct {
	Total        int64 `json:"total"`
	Completed    int64 `json:"completed"`
	Active       int64 `json:"active"`
	HighPriority int64 `json:"high_priority"`
	Overdue      int64 `json:"overdue"`
}

// TaskRepository handles CRUD and filtered queries for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete removes a task within the owner's scope, reporting whether it
// existed.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
	if res.Error != nil {
		return false, fmt.Errorf("delete task: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// filtered builds the owner-scoped base query with every set filter
// applied conjunctively.
func (r *TaskRepository) filtered(ctx context.Context, userID uint, filter TaskFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", userID)

	switch filter.Status {
	case "completed":
		q = q.Where("is_completed = ?", true)
	case "active":
		q = q.Where("is_completed = ?", false)
	}

	if filter.Category != nil {
		q = q.Where("category_id = ?", *filter.Category)
	}

	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	return q
}

// List returns the user's tasks narrowed by filter and ordered per its
// sort parameter.
func (r *TaskRepository) List(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.filtered(ctx, userID, filter).Order(filter.OrderClause()).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CountStats computes the derived counts over the filtered view. Callers
// wanting totals across all tasks pass a zero filter.
func (r *TaskRepository) CountStats(ctx context.Context, userID uint, filter TaskFilter, now time.Time) (Stats, error) {
	var stats Stats

	counts := []struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}{
		{&stats.Total, func(q *gorm.DB) *gorm.DB { return q }},
		{&stats.Completed, func(q *gorm.DB) *gorm.DB { return q.Where("is_completed = ?", true) }},
		{&stats.Active, func(q *gorm.DB) *gorm.DB { return q.Where("is_completed = ?", false) }},
		{&stats.HighPriority, func(q *gorm.DB) *gorm.DB {
			return q.Where("priority = ? AND is_completed = ?", model.PriorityHigh, false)
		}},
		{&stats.Overdue, func(q *gorm.DB) *gorm.DB {
			return q.Where("due_date < ? AND is_completed = ?", now, false)
		}},
	}

	for _, c := range counts {
		if err := c.scope(r.filtered(ctx, userID, filter)).Count(c.dest).Error; err != nil {
			return Stats{}, fmt.Errorf("count tasks: %w", err)
		}
	}

	return stats, nil
}

// Upcoming returns the soonest-due incomplete tasks with a future due
// date from the filtered view, ascending, at most limit.
func (r *TaskRepository) Upcoming(ctx context.Context, userID uint, filter TaskFilter, now time.Time, limit int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.filtered(ctx, userID, filter).
		Where("due_date > ? AND is_completed = ?", now, false).
		Order("due_date ASC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming tasks: %w", err)
	}
	return tasks, nil
}
