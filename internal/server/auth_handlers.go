package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapi/internal/apperr"
	"todoapi/internal/service"
)

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	user, token, err := s.auth.Register(c.Request.Context(), service.RegisterInput{
		Username:             req.Username,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authEnvelope{
		Success: true,
		User:    newUserResponse(user),
		Token:   token,
		Message: "User created successfully",
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(c, apperr.Validation("must include username and password"))
		return
	}

	user, token, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authEnvelope{
		Success: true,
		User:    newUserResponse(user),
		Token:   token,
		Message: "Login successful",
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context(), currentToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "user": newUserResponse(currentUser(c))})
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}

	user, err := s.auth.UpdateProfile(c.Request.Context(), currentUser(c), service.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    newUserResponse(user),
		"message": "Profile updated successfully",
	})
}
