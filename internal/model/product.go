package model

// Product is a catalog item.
type Product struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Code        string  `json:"code"`
	Price       float64 `json:"price"`
	Model       string  `json:"model"`
	ProductURL  string  `json:"productUrl"`
}
