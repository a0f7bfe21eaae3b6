package handler

import (
	"github.com/labstack/echo/v4"

	"chitchat/internal/usecase"
	"chitchat/pkg/response"
)

type FriendHandler struct {
	friendUseCase *usecase.FriendUseCase
}

func NewFriendHandler(friendUseCase *usecase.FriendUseCase) *FriendHandler {
	return &FriendHandler{
		friendUseCase: friendUseCase,
	}
}

type friendRequestRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type respondRequestRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

func (h *FriendHandler) SendRequest(c echo.Context) error {
	var req friendRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.friendUseCase.SendRequest(c.Request().Context(), userID, req.UserID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"message": "Friend request sent successfully"})
}

func (h *FriendHandler) RespondToRequest(c echo.Context) error {
	var req respondRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	requestID := c.Param("requestId")

	if err := h.friendUseCase.RespondToRequest(c.Request().Context(), userID, requestID, req.Action); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{
		"message": "Friend request " + req.Action + "ed successfully",
		"action":  req.Action,
	})
}

func (h *FriendHandler) GetRequests(c echo.Context) error {
	userID := c.Get("uid").(string)

	requests, err := h.friendUseCase.PendingRequests(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"requests": requests})
}

func (h *FriendHandler) GetFriends(c echo.Context) error {
	userID := c.Get("uid").(string)

	friends, err := h.friendUseCase.ListFriends(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"friends": friends})
}

func (h *FriendHandler) RemoveFriend(c echo.Context) error {
	userID := c.Get("uid").(string)
	friendID := c.Param("friendId")

	if err := h.friendUseCase.RemoveFriend(c.Request().Context(), userID, friendID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"message": "Friend removed successfully"})
}
