package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/services"
)

type MiningHandler struct {
	miningService services.MiningService
}

func NewMiningHandler(miningService services.MiningService) *MiningHandler {
	return &MiningHandler{miningService: miningService}
}

func (mh *MiningHandler) Run(c *gin.Context) {
	var req services.MiningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	topics, err := mh.miningService.Run(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"topics": topics})
}
