package models

// SessionState состояние подключения к кошельку
type SessionState int

const (
	Disconnected SessionState = iota
	Connecting
	Connected
)

func (s SessionState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WalletSession address и balance имеют смысл только в состоянии Connected
type WalletSession struct {
	State   SessionState `json:"state"`
	Address string       `json:"address"`
	Balance float64      `json:"balance"`
}

type WalletResponce struct {
	WalletSession
	BalanceText string   `json:"balance_text"`
	BalanceFiat *float64 `json:"balance_fiat,omitempty"`
	Fiat        string   `json:"fiat,omitempty"`
	Status      *Status  `json:"status,omitempty"`
}
