package entity

import "time"

type Item struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Price       float64   `json:"price" firestore:"price"`
	Description string    `json:"description" firestore:"description"`
	Images      []string  `json:"images" firestore:"images"`
	Category    string    `json:"category" firestore:"category"`
	SubCategory string    `json:"sub_category" firestore:"subCategory"`
	SellerID    string    `json:"seller_id" firestore:"sellerId"`
	IsSold      bool      `json:"is_sold" firestore:"isSold"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// SellerSummary is the public slice of a seller profile attached to item
// listings and details.
type SellerSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CollegeName   string  `json:"college_name"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}
