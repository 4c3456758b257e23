package models

// Price data sources.
const (
	SourceLive   = "live"
	SourceBackup = "backup"
)

// PricePoint is one daily gold price: INR per gram of 24K gold.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Price float64 `json:"price"`
}

// PriceQuote is a successfully resolved spot price.
type PriceQuote struct {
	Source          string  `json:"source"`
	PricePerGramINR float64 `json:"current_price_inr_per_gram"`
}

// PriceHistory is a successfully resolved daily price series,
// sorted ascending by date.
type PriceHistory struct {
	Source string       `json:"source"`
	Points []PricePoint `json:"history"`
}
