package model

// Product mirrors an item of the external catalog API. The storefront never
// stores products, they pass through from the upstream service.
type Product struct {
	ID          int64
	Title       string
	Description string
	Category    string
	Price       float64
	Rating      float64
	Thumbnail   string
	Images      []string
}

// ProductPage is a single page of catalog listing results.
type ProductPage struct {
	Products []Product
	Total    int
	Skip     int
	Limit    int
}
