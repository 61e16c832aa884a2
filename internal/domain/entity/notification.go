package entity

import "time"

const (
	NotificationTypeOrder  = "ORDER"
	NotificationTypeSystem = "SYSTEM"
)

// Notification is a durable, pull-based record owned by its recipient.
// Only order-lifecycle events produce one; chat traffic uses the unread
// counters on the messages themselves.
type Notification struct {
	ID        string           `json:"id" firestore:"id"`
	UserID    string           `json:"user_id" firestore:"userId"`
	Title     string           `json:"title" firestore:"title"`
	Message   string           `json:"message" firestore:"message"`
	Type      string           `json:"type" firestore:"type"`
	IsRead    bool             `json:"is_read" firestore:"isRead"`
	Meta      NotificationMeta `json:"meta" firestore:"meta"`
	CreatedAt time.Time        `json:"created_at" firestore:"createdAt"`
}

type NotificationMeta struct {
	OrderID string `json:"order_id,omitempty" firestore:"orderId,omitempty"`
	ItemID  string `json:"item_id,omitempty" firestore:"itemId,omitempty"`
}
