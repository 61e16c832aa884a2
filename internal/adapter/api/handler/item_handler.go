package handler

import (
	"campusmarket/internal/usecase"
	"campusmarket/pkg/response"

	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
	}
}

type itemRequest struct {
	Title       string   `json:"title" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    string   `json:"category" validate:"required"`
	SubCategory string   `json:"sub_category"`
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	item, err := h.itemUseCase.CreateItem(c.Request().Context(), sellerID, usecase.CreateItemInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Images:      req.Images,
		Category:    req.Category,
		SubCategory: req.SubCategory,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	items, err := h.itemUseCase.ListItems(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	item, err := h.itemUseCase.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.itemUseCase.UpdateItem(c.Request().Context(), c.Param("id"), userID, usecase.UpdateItemInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Images:      req.Images,
		Category:    req.Category,
		SubCategory: req.SubCategory,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.itemUseCase.DeleteItem(c.Request().Context(), c.Param("id"), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}
