package server

import (
	"time"

	"todoapi/internal/model"
)

// Request bodies. Each operation has its own contract; create and update
// accept only the client-settable fields, never owner or timestamps.

type registerRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password2"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profileUpdateRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type taskWriteRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *uint      `json:"category"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type categoryWriteRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// Response bodies.

type userResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DateJoined string `json:"date_joined"`
}

type taskResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	IsCompleted  bool       `json:"is_completed"`
	Category     *uint      `json:"category"`
	CategoryName *string    `json:"category_name"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DaysUntilDue *int       `json:"days_until_due"`
}

type categoryResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	TodoCount int64  `json:"todo_count"`
}

type authEnvelope struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
	Token   string       `json:"token,omitempty"`
	Message string       `json:"message,omitempty"`
}

func newUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		DateJoined: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// newTaskResponse renders a task; categoryNames maps category id to name
// for the owner's categories.
func newTaskResponse(task *model.Task, categoryNames map[uint]string, days *int) taskResponse {
	resp := taskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		IsCompleted:  task.IsCompleted,
		Category:     task.CategoryID,
		Priority:     string(task.Priority),
		DueDate:      task.DueDate,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		DaysUntilDue: days,
	}
	if task.CategoryID != nil {
		if name, ok := categoryNames[*task.CategoryID]; ok {
			resp.CategoryName = &name
		}
	}
	return resp
}

func newCategoryResponse(category *model.Category, todoCount int64) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		TodoCount: todoCount,
	}
}
