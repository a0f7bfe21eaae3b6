package handler

import (
	"github.com/labstack/echo/v4"

	"chitchat/internal/usecase"
	"chitchat/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	ReceiverID  string `json:"receiverId" validate:"required"`
	Content     string `json:"content" validate:"required"`
	MessageType string `json:"messageType" validate:"omitempty,oneof=text image file"`
}

// GetConversations returns the caller's conversation list: one entry per
// counterpart with the latest message and the unread count.
func (h *ChatHandler) GetConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.chatUseCase.ListConversations(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"conversations": conversations})
}

// GetHistory returns the most recent window of messages with one user,
// oldest-first.
func (h *ChatHandler) GetHistory(c echo.Context) error {
	userID := c.Get("uid").(string)
	otherUserID := c.Param("userId")

	messages, err := h.chatUseCase.History(c.Request().Context(), userID, otherUserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"messages": messages})
}

// SendMessage is the REST send path; the realtime path goes through the
// websocket dispatcher with the same semantics.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Type:       req.MessageType,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// MarkMessageRead marks a single message as read. Only the receiver may do
// this; anyone else gets a 403.
func (h *ChatHandler) MarkMessageRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	messageID := c.Param("messageId")

	if err := h.chatUseCase.MarkMessageRead(c.Request().Context(), messageID, userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"message": "Message marked as read"})
}
