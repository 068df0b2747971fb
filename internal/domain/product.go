package domain

// ProductDetail is one label/value row shown on the product detail page.
type ProductDetail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Product struct {
	ID          string          `json:"id"`
	Icon        string          `json:"icon"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Details     []ProductDetail `json:"details,omitempty"`
	Related     []string        `json:"related,omitempty"`
}
