package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/akwareg/akwareg-backend/internal/app/models/dto"
	"github.com/akwareg/akwareg-backend/internal/app/services"
	"github.com/akwareg/akwareg-backend/internal/middleware"
	"github.com/akwareg/akwareg-backend/internal/pkg/helpers"
)

// MessageController handles direct messaging between users
type MessageController struct {
	messageService *services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// Send delivers a message to another user
// @Summary Send a message
// @Description Sends a message to another user, optionally referencing a property; connected recipients also receive it over websocket
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Empty content or self-addressed message"
// @Failure 404 {object} dto.ErrorResponse "Receiver not found"
// @Router /messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	message, err := c.messageService.Send(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(message, "Message sent"))
}

// Conversations lists the caller's conversations
// @Summary List conversations
// @Description Lists conversation partners with the latest message and unread count, most recent first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ConversationListResponse} "Conversations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /messages/conversations [get]
func (c *MessageController) Conversations(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	list, err := c.messageService.Conversations(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list, "Conversations"))
}

// Thread returns the message history with one user
// @Summary Get a message thread
// @Description Returns the two-way message history with another user, oldest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other user ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.MessageListResponse} "Messages"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /messages/with/{userId} [get]
func (c *MessageController) Thread(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	otherID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)

	list, err := c.messageService.Thread(ctx.Request.Context(), userID, otherID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list, "Messages"))
}

// MarkRead marks a thread as read
// @Summary Mark a thread read
// @Description Marks all messages received from the given user as read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other user ID"
// @Success 200 {object} dto.APIResponse "Thread marked read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /messages/with/{userId}/read [put]
func (c *MessageController) MarkRead(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	otherID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.messageService.MarkThreadRead(ctx.Request.Context(), userID, otherID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Thread marked read"))
}

// UnreadCount returns the caller's unread message total
// @Summary Get unread count
// @Description Returns the number of unread messages across all conversations
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Unread count"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /messages/unread-count [get]
func (c *MessageController) UnreadCount(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	count, err := c.messageService.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(count, "Unread count"))
}
