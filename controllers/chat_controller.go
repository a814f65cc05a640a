package controllers

import (
	"net/http"

	"plantchatapi/middlewares"
	"plantchatapi/pkg/logger"
	"plantchatapi/services"
	"plantchatapi/utils"

	"github.com/gin-gonic/gin"
)

var chatSrv = services.NewChatService()

// SetChatService initializes the chat service instance.
func SetChatService(srv services.ChatService) {
	chatSrv = srv
}

// plantContext fetches the plant context attached by the routing middleware.
// A missing context means a route was registered outside the middleware,
// which is a wiring bug, not a caller error.
func plantContext(c *gin.Context) (*middlewares.RequestPlantContext, bool) {
	pc, ok := middlewares.FromContext(c)
	if !ok {
		logger.Errorf("Plant context missing on %s %s", c.Request.Method, c.Request.URL.Path)
		utils.FailResponse(c, http.StatusInternalServerError, "plant context not attached")
	}
	return pc, ok
}

// SendMessageRequest represents the request body for sending a chat message
type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// createChatSession creates a new chat session
// @Summary Create chat session
// @Description Creates a new chat session in the caller's plant database
// @Tags Chat
// @Produce json
// @Param Plant-Id header string true "Plant identifier"
// @Param X-User-Id header string true "User identifier"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /api/v1/session [post]
func createChatSession(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	session, err := chatSrv.CreateSession(pc.DB, pc.UserID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Session created", gin.H{
		"session_id": session.SessionID,
	})
}

// getSessionInfo returns information about a chat session
// @Summary Get session info
// @Tags Chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/session/{session_id} [get]
func getSessionInfo(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	session, err := chatSrv.GetSessionInfo(pc.DB, c.Param("session_id"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Session info fetched successfully", session)
}

// getChatHistory returns the paginated message history for a session
// @Summary Get session history
// @Tags Chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Param skip query int false "Records to skip"
// @Param limit query int false "Max records to return"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/session/{session_id}/history [get]
func getChatHistory(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	p := utils.GetPaginationParams(c)
	messages, total, err := chatSrv.GetSessionHistory(pc.DB, c.Param("session_id"), p)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "History fetched successfully",
		utils.NewPaginatedResponse(messages, len(messages), total, p))
}

// sendMessage stores a message in the chat session
// @Summary Send message
// @Tags Chat
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param sendMessageRequest body SendMessageRequest true "Message to send"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/session/{session_id}/message [post]
func sendMessage(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	msg, err := chatSrv.SendMessage(pc.DB, c.Param("session_id"), pc.UserID, req.Message)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Message sent successfully", msg)
}

// deleteSession removes a chat session
// @Summary Delete session
// @Tags Chat
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /api/v1/session/{session_id} [delete]
func deleteSession(c *gin.Context) {
	pc, ok := plantContext(c)
	if !ok {
		return
	}
	if err := chatSrv.DeleteSession(pc.DB, c.Param("session_id")); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Session deleted", nil)
}

// RegisterChatRoutes registers HTTP endpoints for chat operations.
func RegisterChatRoutes(rg *gin.RouterGroup) {
	rg.POST("/session", createChatSession)
	rg.GET("/session/:session_id", getSessionInfo)
	rg.GET("/session/:session_id/history", getChatHistory)
	rg.POST("/session/:session_id/message", sendMessage)
	rg.DELETE("/session/:session_id", deleteSession)
}
