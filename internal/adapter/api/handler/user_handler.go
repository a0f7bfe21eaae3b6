package handler

import (
	"github.com/labstack/echo/v4"

	"chitchat/internal/usecase"
	"chitchat/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	FirstName string   `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  string   `json:"lastName" validate:"omitempty,min=1,max=50"`
	Bio       string   `json:"bio" validate:"omitempty,max=500"`
	Age       int      `json:"age" validate:"omitempty,min=13,max=120"`
	Location  string   `json:"location" validate:"omitempty,max=100"`
	Interests []string `json:"interests"`
}

type updateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,url"`
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"user": user.Summary()})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Age:       req.Age,
		Location:  req.Location,
		Interests: req.Interests,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"user": user})
}

// UpdateAvatar stores the avatar URL on the profile; this service never hosts
// the image itself.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateAvatar(c.Request().Context(), userID, req.Avatar)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"user": user})
}

func (h *UserHandler) SearchUsers(c echo.Context) error {
	userID := c.Get("uid").(string)

	users, err := h.userUseCase.Search(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"users": users})
}

func (h *UserHandler) GetRandomUsers(c echo.Context) error {
	userID := c.Get("uid").(string)

	users, err := h.userUseCase.RandomUsers(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, echo.Map{"users": users})
}
