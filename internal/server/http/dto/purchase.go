package dto

// PurchaseItemRequest is one checkout cart item submitted by the client.
type PurchaseItemRequest struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
}

// PurchaseItemResponse is one purchase history entry; Timestamp is unix
// milliseconds assigned server-side.
type PurchaseItemResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
	Timestamp int64   `json:"timestamp"`
}
