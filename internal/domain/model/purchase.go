package model

// PurchaseItem is a single entry of a user's purchase history.
type PurchaseItem struct {
	ProductID int64
	Title     string
	Price     float64
	Thumbnail string
	// Timestamp is the purchase time in unix milliseconds, assigned
	// server-side when the item is recorded.
	Timestamp int64
}
