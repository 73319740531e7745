package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/apperr"
	"todoapi/internal/model"
	"todoapi/internal/service"
)

func (s *Server) renderCategory(c *gin.Context, status int, category *model.Category) {
	counts, err := s.categories.TaskCounts(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, newCategoryResponse(category, counts[category.ID]))
}

func (s *Server) handleListCategories(c *gin.Context) {
	user := currentUser(c)
	categories, err := s.categories.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	counts, err := s.categories.TaskCounts(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, newCategoryResponse(&categories[i], counts[categories[i].ID]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var req categoryWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	input := service.CategoryInput{}
	if req.Name != nil {
		input.Name = *req.Name
	}
	if req.Color != nil {
		input.Color = *req.Color
	}
	if req.Icon != nil {
		input.Icon = *req.Icon
	}

	category, err := s.categories.Create(c.Request.Context(), currentUser(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	s.renderCategory(c, http.StatusCreated, category)
}

func (s *Server) handleGetCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	category, err := s.categories.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	s.renderCategory(c, http.StatusOK, category)
}

func (s *Server) handleUpdateCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req categoryWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	category, err := s.categories.Update(c.Request.Context(), currentUser(c), id, service.CategoryUpdate{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	s.renderCategory(c, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.categories.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
