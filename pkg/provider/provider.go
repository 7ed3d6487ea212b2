package provider

import "context"

// Provider описывает кошелёк, с которым работает контроллер: хранение ключей,
// подпись и отправка в сеть остаются на его стороне.
type Provider interface {
	Initialize(ctx context.Context) error
	Address(ctx context.Context) (string, error)
	Balance(ctx context.Context) (float64, error)
	Transfer(ctx context.Context, toAddress string, amount float64) (txHash string, err error)
	// Disconnect drops the provider handle.
	Disconnect(ctx context.Context) error
	// DisconnectProvider revokes access at the provider level.
	DisconnectProvider(ctx context.Context) error
}
