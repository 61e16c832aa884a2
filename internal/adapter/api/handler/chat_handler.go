package handler

import (
	"campusmarket/internal/usecase"
	"campusmarket/pkg/response"

	"github.com/labstack/echo/v4"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

func (h *ChatHandler) GetHistory(c echo.Context) error {
	userID := c.Get("uid").(string)
	orderID := c.Param("orderId")

	messages, err := h.chatUseCase.GetHistory(c.Request().Context(), orderID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *ChatHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	orderID := c.Param("orderId")

	if err := h.chatUseCase.MarkRead(c.Request().Context(), orderID, userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

func (h *ChatHandler) GetUnreadSummary(c echo.Context) error {
	userID := c.Get("uid").(string)

	summary, err := h.chatUseCase.GetUnreadSummary(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, summary)
}
