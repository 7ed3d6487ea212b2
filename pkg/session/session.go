package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dustin/go-humanize"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"wallet_transfer_back/models"
	"wallet_transfer_back/pkg/environment"
	"wallet_transfer_back/pkg/exporter"
	"wallet_transfer_back/pkg/provider"
)

var (
	ErrConnectInProgress = errors.New("wallet connection is already in progress")
	ErrNotConnected      = errors.New("wallet is not connected")
	ErrConnectAborted    = errors.New("wallet was disconnected while connecting")
)

const DefaultDisconnectedText = "Cartera desconectada"

// StatusShower is satisfied by *status.Messenger.
type StatusShower interface {
	Show(text string)
}

// Manager владеет единственной сессией кошелька и всеми вызовами провайдера,
// кроме самого перевода.
type Manager struct {
	provider provider.Provider
	status   StatusShower
	env      environment.Resetter
	log      logrus.FieldLogger

	disconnectedText string

	mu         sync.Mutex
	session    models.WalletSession
	connecting bool
	// epoch растёт при каждом отключении; Connect фиксирует результат только в своей эпохе
	epoch uint64
}

type Option func(*Manager)

func WithDisconnectedText(text string) Option {
	return func(m *Manager) {
		if text != "" {
			m.disconnectedText = text
		}
	}
}

func NewManager(p provider.Provider, status StatusShower, env environment.Resetter, log logrus.FieldLogger, opts ...Option) *Manager {
	m := &Manager{
		provider:         p,
		status:           status,
		env:              env,
		log:              log,
		disconnectedText: DefaultDisconnectedText,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect инициализирует провайдера, затем читает адрес и баланс.
// Одновременно выполняется не больше одной попытки подключения.
func (m *Manager) Connect(ctx context.Context) (err error) {
	m.mu.Lock()
	if m.connecting {
		m.mu.Unlock()
		m.log.Warn("Request to connect to the wallet is already in progress")
		return ErrConnectInProgress
	}
	m.connecting = true
	m.session = models.WalletSession{State: models.Connecting}
	epoch := m.epoch
	m.mu.Unlock()

	var (
		address string
		balance float64
	)
	defer func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.connecting = false
		if err == nil && epoch != m.epoch {
			m.log.WithField("address", address).Warn("Wallet was disconnected while connecting, discarding session")
			err = ErrConnectAborted
		}
		if err != nil {
			m.session = models.WalletSession{State: models.Disconnected}
			return
		}
		m.session = models.WalletSession{
			State:   models.Connected,
			Address: address,
			Balance: balance,
		}
	}()

	if err = m.provider.Initialize(ctx); err != nil {
		return m.connectFailed("initialize", err)
	}
	if address, err = m.provider.Address(ctx); err != nil {
		return m.connectFailed("address", err)
	}
	if balance, err = m.provider.Balance(ctx); err != nil {
		return m.connectFailed("balance", err)
	}

	exporter.IncConnect("ok")
	m.log.WithFields(logrus.Fields{
		"address": address,
		"balance": humanize.FormatFloat("#,###.########", balance),
	}).Info("Wallet connected")
	return nil
}

func (m *Manager) connectFailed(op string, err error) error {
	exporter.IncConnect("error")
	exporter.IncProviderError(op)
	m.log.WithError(err).WithField("op", op).Error("Error connecting to the wallet")
	return pkgerrors.Wrapf(err, "connect: %s", op)
}

// Disconnect мягкое отключение: сбрасывает сессию, показывает статус и
// перезагружает страницу, чтобы провайдер очистил своё состояние.
func (m *Manager) Disconnect(ctx context.Context) {
	if err := m.provider.Disconnect(ctx); err != nil {
		exporter.IncProviderError("disconnect")
		m.log.WithError(err).Error("Error disconnecting wallet")
	}
	m.reset()
	m.log.Info("Wallet disconnected")
	m.status.Show(m.disconnectedText)
	m.env.Reload()
}

// DisconnectProvider отзывает доступ у провайдера без перезагрузки страницы
func (m *Manager) DisconnectProvider(ctx context.Context) {
	if err := m.provider.DisconnectProvider(ctx); err != nil {
		exporter.IncProviderError("disconnect_provider")
		m.log.WithError(err).Error("Error revoking wallet provider")
	}
	m.reset()
	m.log.Info("Wallet provider disconnected")
}

// RefreshBalance перечитывает баланс подключённого кошелька
func (m *Manager) RefreshBalance(ctx context.Context) error {
	m.mu.Lock()
	connected := m.session.State == models.Connected
	m.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}

	balance, err := m.provider.Balance(ctx)
	if err != nil {
		exporter.IncProviderError("balance")
		m.log.WithError(err).Error("Error refreshing wallet balance")
		return pkgerrors.Wrap(err, "refresh balance")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// a disconnect may have landed while the provider was answering
	if m.session.State == models.Connected {
		m.session.Balance = balance
	}
	return nil
}

func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.State == models.Connected
}

func (m *Manager) Snapshot() models.WalletSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *Manager) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.session = models.WalletSession{State: models.Disconnected}
}
