package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/service"
)

// pathID parses the :id segment. A malformed id behaves like a missing
// resource so the error surface stays uniform.
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.NotFound()
	}
	return uint(id), nil
}

// filterFromQuery maps the request's query parameters onto a task
// filter. An unknown sort value is passed through and falls back to the
// default ordering downstream; a malformed category id is rejected.
func filterFromQuery(c *gin.Context) (repository.TaskFilter, error) {
	filter := repository.TaskFilter{
		Status:   c.Query("status"),
		Priority: model.Priority(c.Query("priority")),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}

	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, apperr.Validation("category must be a numeric id")
		}
		categoryID := uint(id)
		filter.Category = &categoryID
	}

	return filter, nil
}

// categoryNames fetches the owner's categories as an id-to-name map for
// rendering task responses.
func (s *Server) categoryNames(c *gin.Context) (map[uint]string, error) {
	categories, err := s.categories.List(c.Request.Context(), currentUser(c))
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names, nil
}

func (s *Server) renderTasks(c *gin.Context, tasks []model.Task) {
	names, err := s.categoryNames(c)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, newTaskResponse(&tasks[i], names, s.tasks.DaysUntilDue(&tasks[i])))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) renderTask(c *gin.Context, status int, task *model.Task) {
	names, err := s.categoryNames(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, newTaskResponse(task, names, s.tasks.DaysUntilDue(task)))
}

func (s *Server) handleListTasks(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	tasks, err := s.tasks.List(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	s.renderTasks(c, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req taskWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	input := service.TaskInput{CategoryID: req.Category, DueDate: req.DueDate}
	if req.Title != nil {
		input.Title = *req.Title
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Priority != nil {
		input.Priority = model.Priority(*req.Priority)
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	s.renderTask(c, http.StatusCreated, task)
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	task, err := s.tasks.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	s.renderTask(c, http.StatusOK, task)
}

// handleUpdateTask serves both PUT and PATCH. PUT replaces the whole
// write contract, clearing category and due date when absent; PATCH
// only touches the supplied fields.
func (s *Server) handleUpdateTask(partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			respondError(c, err)
			return
		}

		var req taskWriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("invalid request body"))
			return
		}

		update := service.TaskUpdate{
			Title:       req.Title,
			Description: req.Description,
			CategoryID:  req.Category,
			DueDate:     req.DueDate,
		}
		if req.Priority != nil {
			priority := model.Priority(*req.Priority)
			update.Priority = &priority
		}
		if !partial {
			if req.Title == nil {
				respondError(c, apperr.Validation("title is required"))
				return
			}
			update.ClearCategory = req.Category == nil
			update.ClearDueDate = req.DueDate == nil
		}

		task, err := s.tasks.Update(c.Request.Context(), currentUser(c), id, update)
		if err != nil {
			respondError(c, err)
			return
		}
		s.renderTask(c, http.StatusOK, task)
	}
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	task, err := s.tasks.ToggleComplete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	s.renderTask(c, http.StatusOK, task)
}

// handleTaskStats computes counts over the same filtered view the list
// endpoint would return for these query parameters.
func (s *Server) handleTaskStats(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := s.tasks.Stats(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleUpcomingTasks(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	tasks, err := s.tasks.Upcoming(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	s.renderTasks(c, tasks)
}
