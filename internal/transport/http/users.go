package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uptask/internal/accounts"
	"uptask/internal/auth"
)

// UserHandlers serves the account lifecycle endpoints.
type UserHandlers struct {
	Accounts *accounts.Service
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandlers) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "missing or invalid fields")
		return
	}
	user, err := h.Accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg":  "account created, check your email to confirm it",
		"user": user.Ref(),
	})
}

func (h *UserHandlers) Confirm(c *gin.Context) {
	if err := h.Accounts.Confirm(c.Request.Context(), c.Param("token")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "account confirmed"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "missing or invalid fields")
		return
	}
	token, user, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	ref := user.Ref()
	c.JSON(http.StatusOK, gin.H{
		"id":    ref.ID,
		"name":  ref.Name,
		"email": ref.Email,
		"token": token,
	})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *UserHandlers) Forgot(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "missing or invalid email")
		return
	}
	if err := h.Accounts.Forgot(c.Request.Context(), req.Email); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "reset instructions sent"})
}

func (h *UserHandlers) CheckResetToken(c *gin.Context) {
	if err := h.Accounts.CheckResetToken(c.Request.Context(), c.Param("token")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "token valid"})
}

type resetRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *UserHandlers) Reset(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "missing password")
		return
	}
	if err := h.Accounts.Reset(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "password updated"})
}

// Profile echoes the authenticated identity, redacted.
func (h *UserHandlers) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c).Ref())
}
