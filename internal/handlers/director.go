package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/services"
)

type DirectorHandler struct {
	directorService services.DirectorService
}

func NewDirectorHandler(directorService services.DirectorService) *DirectorHandler {
	return &DirectorHandler{directorService: directorService}
}

func (dh *DirectorHandler) Run(c *gin.Context) {
	var req services.DirectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	output, err := dh.directorService.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"output": output})
}
