package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// TaskInput represents data accepted when creating a task. The owner is
// never part of the input; it is stamped from the resolved identity.
type TaskInput struct {
	Title       string
	Description string
	CategoryID  *uint
	Priority    model.Priority
	DueDate     *time.Time
}

// TaskUpdate lists the mutable task fields. Nil fields keep their stored
// values; ClearCategory and ClearDueDate reset the nullable ones.
type TaskUpdate struct {
	Title         *string
	Description   *string
	CategoryID    *uint
	ClearCategory bool
	Priority      *model.Priority
	DueDate       *time.Time
	ClearDueDate  bool
}

// TaskService wraps task business logic. Every operation is scoped to
// the calling user; tasks of other users behave exactly like missing
// ones.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	now          func() time.Time
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo, now: time.Now}
}

// checkCategory verifies the referenced category exists and belongs to
// the user before it may be attached to a task.
func (s *TaskService) checkCategory(ctx context.Context, user *model.User, categoryID uint) error {
	_, err := s.categoryRepo.FindByID(ctx, user.ID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound()
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, user *model.User, input TaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, apperr.Validation("priority must be one of low, medium, high")
	}

	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, user, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		UserID:      user.ID,
		CategoryID:  input.CategoryID,
		Title:       title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apperr.Internal(err)
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, user.ID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound()
		}
		return nil, apperr.Internal(err)
	}
	return task, nil
}

// Update applies a partial update. UserID and CreatedAt are never
// touched; UpdatedAt refreshes through the ORM on save.
func (s *TaskService) Update(ctx context.Context, user *model.User, taskID uint, update TaskUpdate) (*model.Task, error) {
	task, err := s.Get(ctx, user, taskID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, apperr.Validation("title is required")
		}
		task.Title = title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Priority != nil {
		if !model.ValidPriority(*update.Priority) {
			return nil, apperr.Validation("priority must be one of low, medium, high")
		}
		task.Priority = *update.Priority
	}
	switch {
	case update.ClearCategory:
		task.CategoryID = nil
	case update.CategoryID != nil:
		if err := s.checkCategory(ctx, user, *update.CategoryID); err != nil {
			return nil, err
		}
		task.CategoryID = update.CategoryID
	}
	switch {
	case update.ClearDueDate:
		task.DueDate = nil
	case update.DueDate != nil:
		task.DueDate = update.DueDate
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, apperr.Internal(err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, user *model.User, taskID uint) error {
	deleted, err := s.taskRepo.Delete(ctx, user.ID, taskID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !deleted {
		return apperr.NotFound()
	}
	return nil
}

// ToggleComplete flips the completion flag. Applying it twice restores
// the original state.
func (s *TaskService) ToggleComplete(ctx context.Context, user *model.User, taskID uint) (*model.Task, error) {
	task, err := s.Get(ctx, user, taskID)
	if err != nil {
		return nil, err
	}
	task.IsCompleted = !task.IsCompleted
	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, apperr.Internal(err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, user *model.User, filter repository.TaskFilter) ([]model.Task, error) {
	tasks, err := s.taskRepo.List(ctx, user.ID, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

// Stats computes counts over the same filtered view List would return,
// so callers wanting global numbers pass an empty filter.
func (s *TaskService) Stats(ctx context.Context, user *model.User, filter repository.TaskFilter) (repository.Stats, error) {
	stats, err := s.taskRepo.CountStats(ctx, user.ID, filter, s.now())
	if err != nil {
		return repository.Stats{}, apperr.Internal(err)
	}
	return stats, nil
}

// UpcomingLimit is how many tasks the upcoming projection returns at most.
const UpcomingLimit = 10

// Upcoming returns the soonest-due incomplete future-dated tasks from
// the filtered view, ascending by due date.
func (s *TaskService) Upcoming(ctx context.Context, user *model.User, filter repository.TaskFilter) ([]model.Task, error) {
	tasks, err := s.taskRepo.Upcoming(ctx, user.ID, filter, s.now(), UpcomingLimit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

// DaysUntilDue exposes the task's whole-day countdown relative to the
// service clock.
func (s *TaskService) DaysUntilDue(task *model.Task) *int {
	return task.DaysUntilDue(s.now())
}
