package domain

// Product is the normalized catalog record produced once at the
// data-ingestion boundary. Upstream field aliases (title/image, nested
// rating) are resolved there; the rest of the code sees this shape only.
type Product struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"imageUrl"`
	Description    string  `json:"description"`
	Category       string  `json:"category"`
	RatingValue    float64 `json:"ratingValue"`
	ReviewCount    int     `json:"reviewCount"`
	AvailableStock int     `json:"availableStock"`
}
