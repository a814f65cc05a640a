package controllers

import (
	"net/http"
	"strconv"

	"plantchatapi/services"
	"plantchatapi/utils"

	"github.com/gin-gonic/gin"
)

var artifactSrv = services.NewArtifactService()

// SetArtifactService initializes the artifact service instance.
func SetArtifactService(srv services.ArtifactService) {
	artifactSrv = srv
}

// CreateArtifactRequest represents the request body for creating an artifact
type CreateArtifactRequest struct {
	SessionID    string  `json:"session_id" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	Content      string  `json:"content" binding:"required"`
	ArtifactType string  `json:"artifact_type"`
	Metadata     *string `json:"artifact_metadata"`
	MessageID    *uint   `json:"message_id"`
}

// createArtifact creates a new artifact for a chat session
// @Summary Create artifact
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param Plant-Id header string true "Plant identifier"
// @Param X-User-Id header string true "User identifier"
// @Param createArtifactRequest body CreateArtifactRequest true "Artifact to create"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/artifacts [post]
func createArtifact(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	var req CreateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	artifact, err := artifactSrv.Create(pc.DB, pc.UserID, services.CreateArtifactParams{
		SessionID:    req.SessionID,
		Title:        req.Title,
		Content:      req.Content,
		ArtifactType: req.ArtifactType,
		Metadata:     req.Metadata,
		MessageID:    req.MessageID,
	})
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Artifact created", artifact)
}

// getArtifact returns a single artifact by ID
// @Summary Get artifact
// @Tags Artifacts
// @Produce json
// @Param id path int true "Artifact ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/artifacts/{id} [get]
func getArtifact(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.FailResponse(c, http.StatusBadRequest, "invalid artifact id")
		return
	}
	artifact, err := artifactSrv.GetByID(pc.DB, uint(id))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Artifact fetched successfully", artifact)
}

// listArtifacts returns the paginated artifacts of a session
// @Summary List artifacts by session
// @Tags Artifacts
// @Produce json
// @Param session_id path string true "Session ID"
// @Param skip query int false "Records to skip"
// @Param limit query int false "Max records to return"
// @Success 200 {object} utils.Response
// @Router /api/v1/session/{session_id}/artifacts [get]
func listArtifacts(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	p := utils.GetPaginationParams(c)
	artifacts, total, err := artifactSrv.ListBySession(pc.DB, c.Param("session_id"), p)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Artifacts fetched successfully",
		utils.NewPaginatedResponse(artifacts, len(artifacts), total, p))
}

// deleteArtifact removes an artifact
// @Summary Delete artifact
// @Tags Artifacts
// @Produce json
// @Param id path int true "Artifact ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/artifacts/{id} [delete]
func deleteArtifact(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		utils.FailResponse(c, http.StatusBadRequest, "invalid artifact id")
		return
	}
	if err := artifactSrv.Delete(pc.DB, uint(id)); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Artifact deleted", nil)
}

// RegisterArtifactRoutes registers HTTP endpoints for artifact operations.
func RegisterArtifactRoutes(rg *gin.RouterGroup) {
	rg.POST("/artifacts", createArtifact)
	rg.GET("/artifacts/:id", getArtifact)
	rg.DELETE("/artifacts/:id", deleteArtifact)
	rg.GET("/session/:session_id/artifacts", listArtifacts)
}
