package models

import "time"

// Status единственное живое сообщение для пользователя
type Status struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
