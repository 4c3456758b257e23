package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Transaction is a recorded simulated gold purchase. Rows are
// insert-only; there are no update or delete paths.
type Transaction struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	AmountINR        float64   `json:"amountInr"`
	GramsPurchased   float64   `json:"gramsPurchased"`
	GoldPricePerGram float64   `json:"goldPricePerGram"`
	Timestamp        time.Time `json:"timestamp"`
}
