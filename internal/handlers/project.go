package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (ph *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	project, err := ph.projectService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"project": project})
}

func (ph *ProjectHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	projects, err := ph.projectService.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"projects": projects})
}

func (ph *ProjectHandler) GetDetail(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid project id")))
		return
	}
	detail, err := ph.projectService.GetDetail(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"project": detail})
}

func (ph *ProjectHandler) UpdateTitle(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid project id")))
		return
	}
	var req services.UpdateProjectTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	project, err := ph.projectService.UpdateTitle(c.Request.Context(), projectID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"project": project})
}

func (ph *ProjectHandler) Delete(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid project id")))
		return
	}
	if err := ph.projectService.Delete(c.Request.Context(), projectID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{})
}
