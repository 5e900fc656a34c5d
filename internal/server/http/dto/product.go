package dto

// ProductResponse mirrors one catalog product.
type ProductResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
}

// ProductPageResponse is one page of catalog results.
type ProductPageResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Skip     int               `json:"skip"`
	Limit    int               `json:"limit"`
}
