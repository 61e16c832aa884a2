package handler

import (
	"time"

	"campusmarket/internal/domain/repository"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/response"
	"campusmarket/pkg/utils"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	buyerID := c.Get("uid").(string)
	itemID := c.Param("itemId")

	order, err := h.orderUseCase.CreateOrder(c.Request().Context(), buyerID, itemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) ConfirmOrder(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	orderID := c.Param("orderId")

	order, err := h.orderUseCase.ConfirmOrder(c.Request().Context(), orderID, sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	orderID := c.Param("orderId")

	order, err := h.orderUseCase.CancelOrder(c.Request().Context(), orderID, sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	orderID := c.Param("orderId")

	order, err := h.orderUseCase.CompleteOrder(c.Request().Context(), orderID, sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	buyerID := c.Get("uid").(string)

	orders, err := h.orderUseCase.GetMyOrders(c.Request().Context(), buyerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, orders)
}

func (h *OrderHandler) GetBuyerHistory(c echo.Context) error {
	buyerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)
	filter := orderFilterFromQuery(c)

	orders, total, err := h.orderUseCase.GetBuyerHistory(c.Request().Context(), buyerID, filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) GetSellerHistory(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)
	filter := orderFilterFromQuery(c)

	orders, total, err := h.orderUseCase.GetSellerHistory(c.Request().Context(), sellerID, filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) GetOrderDetails(c echo.Context) error {
	userID := c.Get("uid").(string)
	orderID := c.Param("orderId")

	detail, err := h.orderUseCase.GetOrderDetails(c.Request().Context(), orderID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

func orderFilterFromQuery(c echo.Context) repository.OrderFilter {
	filter := repository.OrderFilter{
		Status: c.QueryParam("status"),
	}

	if from, err := time.Parse("2006-01-02", c.QueryParam("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse("2006-01-02", c.QueryParam("to")); err == nil {
		// Make the range inclusive of the whole end day
		to = to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &to
	}

	return filter
}
