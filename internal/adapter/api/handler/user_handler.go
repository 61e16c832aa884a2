package handler

import (
	"campusmarket/internal/domain/entity"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/response"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type registerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	MobileNo    string `json:"mobile_no" validate:"required"`
	CollegeName string `json:"college_name" validate:"required"`
	YearOfStudy string `json:"year_of_study"`
	Branch      string `json:"branch"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		MobileNo:    req.MobileNo,
		CollegeName: req.CollegeName,
		YearOfStudy: req.YearOfStudy,
		Branch:      req.Branch,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, user)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.userUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *UserHandler) GetMe(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetMe(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	Name        string           `json:"name"`
	MobileNo    string           `json:"mobile_no"`
	Image       string           `json:"image"`
	CollegeName string           `json:"college_name"`
	YearOfStudy string           `json:"year_of_study"`
	Branch      string           `json:"branch"`
	Location    *entity.Location `json:"location"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Name:        req.Name,
		MobileNo:    req.MobileNo,
		Image:       req.Image,
		CollegeName: req.CollegeName,
		YearOfStudy: req.YearOfStudy,
		Branch:      req.Branch,
		Location:    req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) ToggleFavorite(c echo.Context) error {
	userID := c.Get("uid").(string)
	itemID := c.Param("id")

	added, err := h.userUseCase.ToggleFavorite(c.Request().Context(), userID, itemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"favorited": added})
}

func (h *UserHandler) GetFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)

	items, err := h.userUseCase.GetFavorites(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}
