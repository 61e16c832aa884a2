package entity

import "time"

// Review is left by the buyer of a completed order, rating the seller.
type Review struct {
	ID             string    `json:"id" firestore:"id"`
	ReviewerID     string    `json:"reviewer_id" firestore:"reviewerId"`
	ReviewedUserID string    `json:"reviewed_user_id" firestore:"reviewedUserId"`
	OrderID        string    `json:"order_id" firestore:"orderId"`
	Rating         int       `json:"rating" firestore:"rating"` // 1-5
	Comment        string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
