package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/auth"
	"uptask/internal/core"
)

// ProjectHandlers serves project CRUD and the collaborator endpoints.
type ProjectHandlers struct {
	Projects *core.ProjectService
	Collab   *core.CollabService
}

func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortBadRequest(c, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

type projectRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Client      string    `json:"client"`
}

func (r projectRequest) input() core.ProjectInput {
	return core.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		DueDate:     r.DueDate,
		Client:      r.Client,
	}
}

func (h *ProjectHandlers) List(c *gin.Context) {
	projects, err := h.Projects.List(c.Request.Context(), auth.CurrentUser(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandlers) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid payload")
		return
	}
	project, err := h.Projects.Create(c.Request.Context(), auth.CurrentUser(c), req.input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := h.Projects.Get(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ProjectHandlers) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid payload")
		return
	}
	project, err := h.Projects.Edit(c.Request.Context(), auth.CurrentUser(c), id, req.input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Projects.Delete(c.Request.Context(), auth.CurrentUser(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "project deleted"})
}

// SearchCollaborator resolves an invite candidate by email and returns
// the redacted identity view.
func (h *ProjectHandlers) SearchCollaborator(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "missing or invalid email")
		return
	}
	ref, err := h.Collab.ResolveCandidate(c.Request.Context(), req.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

func (h *ProjectHandlers) AddCollaborator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "missing or invalid email")
		return
	}
	if err := h.Collab.Add(c.Request.Context(), auth.CurrentUser(c), id, req.Email); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "collaborator added"})
}

type removeCollaboratorRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *ProjectHandlers) RemoveCollaborator(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req removeCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "missing collaborator id")
		return
	}
	targetID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		abortBadRequest(c, "invalid collaborator id")
		return
	}
	if err := h.Collab.Remove(c.Request.Context(), auth.CurrentUser(c), id, targetID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "collaborator removed"})
}
