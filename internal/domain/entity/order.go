package entity

import "time"

// Order status lifecycle: PENDING -> CONFIRMED -> COMPLETED, with
// cancellation allowed from PENDING and CONFIRMED. CANCELLED and COMPLETED
// are terminal.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusCompleted = "COMPLETED"
)

type Order struct {
	ID         string    `json:"id" firestore:"id"`
	BuyerID    string    `json:"buyer_id" firestore:"buyerId"`
	SellerID   string    `json:"seller_id" firestore:"sellerId"`
	ItemID     string    `json:"item_id" firestore:"itemId"`
	Status     string    `json:"status" firestore:"status"`
	IsReviewed bool      `json:"is_reviewed" firestore:"isReviewed"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

// IsTerminal reports whether the order can never change status again.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusCompleted
}

// IsParticipant reports whether userID is the buyer or the seller.
func (o *Order) IsParticipant(userID string) bool {
	return o.BuyerID == userID || o.SellerID == userID
}
