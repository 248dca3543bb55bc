package types

// ShippedProduct is the denormalized product snapshot stored on a
// FulfillmentTracking row and echoed into feedback placeholders.
type ShippedProduct struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CatalogProduct is a product as read from the storefront catalog.
type CatalogProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ProductType string   `json:"product_type"`
	Tags        []string `json:"tags"`
	Price       string   `json:"price,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// ProductRecommendation is one ranked item in a model response. The json
// names match the array the model is instructed to emit.
type ProductRecommendation struct {
	ProductID    string  `json:"productId"`
	ProductTitle string  `json:"productTitle"`
	Reasoning    string  `json:"reasoning"`
	Confidence   float64 `json:"confidence"`
}

// FeedbackEmailData is the input to the feedback solicitation email.
type FeedbackEmailData struct {
	CustomerEmail string
	DogName       string
	FeedbackURL   string
	Products      []ShippedProduct
}
