package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/services"
)

type CopywriterHandler struct {
	copywriterService services.CopywriterService
}

func NewCopywriterHandler(copywriterService services.CopywriterService) *CopywriterHandler {
	return &CopywriterHandler{copywriterService: copywriterService}
}

func (ch *CopywriterHandler) Run(c *gin.Context) {
	var req services.CopywriterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	res, err := ch.copywriterService.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"step": res.Step, "result": res.Result, "output": res.Output})
}
