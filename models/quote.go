package models

type ConvertRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"` // монета, например "ETH"
	To     string  `json:"to"`   // фиат, например "USD"
}

type ConvertResponse struct {
	ConvertedAmount float64 `json:"convertedAmount"`
	Rate            float64 `json:"rate"`
	Currency        string  `json:"currency"`
}
