package models

import "time"

// TransferRequest одиночный перевод, собирается из формы на каждую попытку
type TransferRequest struct {
	ToAddress string  `json:"to_address"`
	Amount    float64 `json:"amount"`
}

// TransferForm значения полей формы в том виде, в каком их ввёл пользователь
type TransferForm struct {
	ToAddress string `json:"to_address"`
	Amount    string `json:"amount"`
}

type TransferReceipt struct {
	TxHash    string    `json:"tx_hash"`
	ToAddress string    `json:"to_address"`
	Amount    float64   `json:"amount"`
	SentAt    time.Time `json:"sent_at"`
}

type SendInput struct {
	ToAddress *string `json:"to_address"`
	Amount    *string `json:"amount"`
}
