package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryInput carries the fields accepted when creating a category.
type CategoryInput struct {
	Name  string
	Color string
	Icon  string
}

// CategoryUpdate lists the mutable category fields; nil keeps the stored
// value.
type CategoryUpdate struct {
	Name  *string
	Color *string
	Icon  *string
}

// CategoryService wraps category business logic, scoped to the calling
// user like tasks are.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) Create(ctx context.Context, user *model.User, input CategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if input.Color != "" && !colorPattern.MatchString(input.Color) {
		return nil, apperr.Validation("color must be in #RRGGBB format")
	}

	category := &model.Category{
		UserID: user.ID,
		Name:   name,
	}
	if input.Color != "" {
		category.Color = input.Color
	}
	if input.Icon != "" {
		category.Icon = input.Icon
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.Conflict("a category with that name already exists")
		}
		return nil, apperr.Internal(err)
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, user *model.User, categoryID uint) (*model.Category, error) {
	category, err := s.repo.FindByID(ctx, user.ID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound()
		}
		return nil, apperr.Internal(err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, user *model.User) ([]model.Category, error) {
	categories, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return categories, nil
}

// TaskCounts returns per-category task totals for the read contract.
func (s *CategoryService) TaskCounts(ctx context.Context, user *model.User) (map[uint]int64, error) {
	counts, err := s.repo.TaskCounts(ctx, user.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return counts, nil
}

func (s *CategoryService) Update(ctx context.Context, user *model.User, categoryID uint, update CategoryUpdate) (*model.Category, error) {
	category, err := s.Get(ctx, user, categoryID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperr.Validation("name is required")
		}
		category.Name = name
	}
	if update.Color != nil {
		if !colorPattern.MatchString(*update.Color) {
			return nil, apperr.Validation("color must be in #RRGGBB format")
		}
		category.Color = *update.Color
	}
	if update.Icon != nil {
		category.Icon = *update.Icon
	}

	if err := s.repo.Save(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.Conflict("a category with that name already exists")
		}
		return nil, apperr.Internal(err)
	}
	return category, nil
}

// Delete removes a category; its tasks are detached, never deleted.
func (s *CategoryService) Delete(ctx context.Context, user *model.User, categoryID uint) error {
	deleted, err := s.repo.Delete(ctx, user.ID, categoryID)
	if err != nil {
		return apperr.Internal(err)
	}
	if !deleted {
		return apperr.NotFound()
	}
	return nil
}
