package websocket

import (
	"context"
	"encoding/json"
	"time"

	"campusmarket/pkg/logger"
)

// Event types exchanged over a socket session.
const (
	EventJoinRoom     = "join_room"
	EventJoinUserRoom = "join_user_room"
	EventSendMessage  = "send_message"

	EventReceiveMessage         = "receive_message"
	EventNewMessageNotification = "new_message_notification"
	EventError                  = "error"
)

// Event is the wire envelope for both directions.
type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type joinRoomData struct {
	OrderID string `json:"order_id"`
}

type joinUserRoomData struct {
	UserID string `json:"user_id"`
}

type sendMessageData struct {
	OrderID string `json:"order_id"`
	Content string `json:"content"`
}

// PostedMessage is the populated chat message handed back by the chat layer:
// the stored message plus the sender's display name and the order's parties,
// which the transport needs to route the counterpart notification.
type PostedMessage struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`

	BuyerID  string `json:"buyer_id"`
	SellerID string `json:"seller_id"`
}

// MessagePoster persists a chat message on behalf of a socket session. The
// chat use case implements it; the transport stays ignorant of storage.
type MessagePoster interface {
	PostMessage(ctx context.Context, orderID, senderID, content string) (*PostedMessage, error)
}

type newMessageNotification struct {
	OrderID    string `json:"order_id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
}

// HandleClientEvent dispatches one inbound event from a socket session.
func (m *Manager) HandleClientEvent(client *Client, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		logger.Warn("websocket: malformed event from %s: %v", client.UserID, err)
		m.sendError(client, "Invalid event format")
		return
	}

	switch event.Type {
	case EventJoinRoom:
		m.handleJoinRoom(client, event.Data)

	case EventJoinUserRoom:
		m.handleJoinUserRoom(client, event.Data)

	case EventSendMessage:
		m.handleSendMessage(client, event.Data)

	default:
		logger.Warn("websocket: unknown event type %q from %s", event.Type, client.UserID)
		m.sendError(client, "Unknown event type")
	}
}

func (m *Manager) handleJoinRoom(client *Client, data json.RawMessage) {
	var join joinRoomData
	if err := json.Unmarshal(data, &join); err != nil || join.OrderID == "" {
		m.sendError(client, "Missing order_id")
		return
	}

	m.JoinOrderRoom(client, join.OrderID)
	logger.Debug("websocket: %s joined order room %s", client.UserID, join.OrderID)
}

func (m *Manager) handleJoinUserRoom(client *Client, data json.RawMessage) {
	var join joinUserRoomData
	if err := json.Unmarshal(data, &join); err != nil {
		m.sendError(client, "Invalid join_user_room data")
		return
	}

	// The room key is always the authenticated user; a client cannot
	// subscribe to someone else's pushes.
	if join.UserID != "" && join.UserID != client.UserID {
		m.sendError(client, "Cannot join another user's room")
		return
	}

	m.JoinUserRoom(client)
	logger.Debug("websocket: %s joined personal room", client.UserID)
}

func (m *Manager) handleSendMessage(client *Client, data json.RawMessage) {
	var send sendMessageData
	if err := json.Unmarshal(data, &send); err != nil || send.OrderID == "" || send.Content == "" {
		m.sendError(client, "Missing order_id or content")
		return
	}

	if m.poster == nil {
		m.sendError(client, "Chat is unavailable")
		return
	}

	posted, err := m.poster.PostMessage(context.Background(), send.OrderID, client.UserID, send.Content)
	if err != nil {
		m.sendError(client, err.Error())
		return
	}

	m.broadcastEvent(send.OrderID, EventReceiveMessage, posted)

	receiver := posted.SellerID
	if posted.SenderID == posted.SellerID {
		receiver = posted.BuyerID
	}
	if receiver != posted.SenderID {
		m.sendUserEvent(receiver, EventNewMessageNotification, newMessageNotification{
			OrderID:    posted.OrderID,
			SenderID:   posted.SenderID,
			SenderName: posted.SenderName,
			Content:    posted.Content,
		})
	}
}

func (m *Manager) broadcastEvent(orderID, eventType string, data interface{}) {
	payload, err := marshalEvent(eventType, data)
	if err != nil {
		logger.Error("websocket: failed to marshal %s event: %v", eventType, err)
		return
	}
	m.BroadcastToOrderRoom(orderID, payload)
}

func (m *Manager) sendUserEvent(userID, eventType string, data interface{}) {
	payload, err := marshalEvent(eventType, data)
	if err != nil {
		logger.Error("websocket: failed to marshal %s event: %v", eventType, err)
		return
	}
	m.SendToUserRoom(userID, payload)
}

// sendError goes back to the originating connection only, never broadcast.
func (m *Manager) sendError(client *Client, message string) {
	payload, err := marshalEvent(EventError, map[string]string{"message": message})
	if err != nil {
		return
	}
	m.sendToClient(client, payload)
}

func marshalEvent(eventType string, data interface{}) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Event{
		Type:      eventType,
		Data:      body,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
