package usecase

import (
	"context"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	ws "campusmarket/internal/infrastructure/websocket"
	"campusmarket/pkg/errors"
)

// ChatUseCase is the per-order bounded message channel. Chat opens when the
// seller confirms and stays open after completion; it never has more than
// maxMessages messages per order.
type ChatUseCase struct {
	messageRepo repository.MessageRepository
	orderRepo   repository.OrderRepository
	userRepo    repository.UserRepository
	maxMessages int
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	maxMessages int,
) *ChatUseCase {
	if maxMessages <= 0 {
		maxMessages = 20
	}
	return &ChatUseCase{
		messageRepo: messageRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		maxMessages: maxMessages,
	}
}

// MessageView is a chat message populated with its sender's display name.
type MessageView struct {
	*entity.Message
	SenderName string `json:"sender_name"`
}

type UnreadConversation struct {
	OrderID     string `json:"order_id"`
	Count       int64  `json:"count"`
	LastMessage string `json:"last_message"`
	SenderName  string `json:"sender_name"`
}

type UnreadSummary struct {
	Count         int64                 `json:"count"`
	Conversations []*UnreadConversation `json:"conversations"`
}

// PostMessage persists a chat message after checking the order gate and the
// message cap, and returns it populated with the sender name and the
// order's parties. Implements the realtime transport's MessagePoster.
func (uc *ChatUseCase) PostMessage(ctx context.Context, orderID, senderID, content string) (*ws.PostedMessage, error) {
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant of this order", nil)
	}

	if order.Status != entity.OrderStatusConfirmed && order.Status != entity.OrderStatusCompleted {
		return nil, errors.InvalidState("Chat is only available for confirmed orders", nil)
	}

	message := &entity.Message{
		OrderID:  orderID,
		SenderID: senderID,
		Content:  content,
	}

	if err := uc.messageRepo.CreateWithCap(ctx, message, int64(uc.maxMessages)); err != nil {
		return nil, err
	}

	senderName := ""
	if sender, err := uc.userRepo.GetByID(ctx, senderID); err == nil {
		senderName = sender.Name
	}

	return &ws.PostedMessage{
		ID:         message.ID,
		OrderID:    message.OrderID,
		SenderID:   message.SenderID,
		SenderName: senderName,
		Content:    message.Content,
		IsRead:     message.IsRead,
		CreatedAt:  message.CreatedAt,
		BuyerID:    order.BuyerID,
		SellerID:   order.SellerID,
	}, nil
}

// GetHistory returns the full message log in chronological order. There is
// no pagination; the cap bounds the log at maxMessages.
func (uc *ChatUseCase) GetHistory(ctx context.Context, orderID, userID string) ([]*MessageView, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this order", nil)
	}

	messages, err := uc.messageRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, 2)
	views := make([]*MessageView, 0, len(messages))
	for _, message := range messages {
		name, ok := names[message.SenderID]
		if !ok {
			if sender, err := uc.userRepo.GetByID(ctx, message.SenderID); err == nil {
				name = sender.Name
			}
			names[message.SenderID] = name
		}
		views = append(views, &MessageView{Message: message, SenderName: name})
	}

	return views, nil
}

// MarkRead flips isRead on every message in the order not authored by the
// requester. Idempotent.
func (uc *ChatUseCase) MarkRead(ctx context.Context, orderID, userID string) error {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.IsParticipant(userID) {
		return errors.Forbidden("You are not a participant of this order", nil)
	}

	return uc.messageRepo.MarkReadExceptSender(ctx, orderID, userID)
}

// GetUnreadSummary groups the user's unread incoming messages by order:
// per-order count, most recent message text and its sender's name, plus the
// total across all orders.
func (uc *ChatUseCase) GetUnreadSummary(ctx context.Context, userID string) (*UnreadSummary, error) {
	orders, err := uc.orderRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]string, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	unread, err := uc.messageRepo.ListUnread(ctx, orderIDs, userID)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[string]*UnreadConversation)
	var ordered []*UnreadConversation
	names := make(map[string]string)

	for _, message := range unread {
		conv, ok := byOrder[message.OrderID]
		if !ok {
			conv = &UnreadConversation{OrderID: message.OrderID}
			byOrder[message.OrderID] = conv
			ordered = append(ordered, conv)
		}

		conv.Count++
		conv.LastMessage = message.Content

		name, ok := names[message.SenderID]
		if !ok {
			if sender, err := uc.userRepo.GetByID(ctx, message.SenderID); err == nil {
				name = sender.Name
			}
			names[message.SenderID] = name
		}
		conv.SenderName = name
	}

	summary := &UnreadSummary{Conversations: ordered}
	for _, conv := range ordered {
		summary.Count += conv.Count
	}

	return summary, nil
}
