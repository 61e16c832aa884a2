package entity

import "time"

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	Name        string `json:"name" firestore:"name"`
	MobileNo    string `json:"mobile_no" firestore:"mobileNo"`
	Image       string `json:"image,omitempty" firestore:"image,omitempty"`
	CollegeName string `json:"college_name" firestore:"collegeName"`
	YearOfStudy string `json:"year_of_study,omitempty" firestore:"yearOfStudy,omitempty"`
	Branch      string `json:"branch" firestore:"branch"`
	Role        string `json:"role" firestore:"role"` // "user" or "admin"

	Location Location `json:"location" firestore:"location"`

	// Seller reputation, recomputed as a running average on each review.
	AverageRating float64 `json:"average_rating" firestore:"averageRating"`
	RatingCount   int     `json:"rating_count" firestore:"ratingCount"`

	Favorites []string `json:"favorites,omitempty" firestore:"favorites,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Location struct {
	Address string  `json:"address,omitempty" firestore:"address,omitempty"`
	Lat     float64 `json:"lat,omitempty" firestore:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty" firestore:"lng,omitempty"`
}
