package service

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"wallet_transfer_back/models"
	"wallet_transfer_back/pkg/environment"
	"wallet_transfer_back/pkg/provider"
	"wallet_transfer_back/pkg/session"
	"wallet_transfer_back/pkg/status"
	"wallet_transfer_back/pkg/transfer"
)

type Session interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context)
	DisconnectProvider(ctx context.Context)
	RefreshBalance(ctx context.Context) error
	Connected() bool
	Snapshot() models.WalletSession
}

type Transfer interface {
	SetForm(toAddress, amount string) error
	Form() models.TransferForm
	Locked() bool
	Submit(ctx context.Context) (models.TransferReceipt, error)
	SubmitWith(ctx context.Context, in models.SendInput) (models.TransferReceipt, error)
}

type Status interface {
	Show(text string)
	Clear()
	Current() (models.Status, bool)
}

type Quote interface {
	Convert(ctx context.Context, req models.ConvertRequest) (models.ConvertResponse, error)
}

type Service struct {
	Session
	Transfer
	Status
	Quote

	Coin string
	Fiat string
	log  logrus.FieldLogger
}

type Deps struct {
	Provider    provider.Provider
	Messenger   *status.Messenger
	Environment environment.Resetter
	Quote       Quote
	Log         logrus.FieldLogger

	Messages     transfer.Messages
	Disconnected string
	Coin         string
	Fiat         string
}

func NewService(d Deps) *Service {
	sess := session.NewManager(d.Provider, d.Messenger, d.Environment,
		d.Log.WithField("component", "session"),
		session.WithDisconnectedText(d.Disconnected))

	return &Service{
		Session:  sess,
		Transfer: transfer.NewSubmitter(d.Provider, sess, d.Messenger, d.Log.WithField("component", "transfer"), d.Messages),
		Status:   d.Messenger,
		Quote:    d.Quote,
		Coin:     d.Coin,
		Fiat:     d.Fiat,
		log:      d.Log,
	}
}

// Wallet снимок сессии для ответа API, с оценкой баланса в фиате если она включена
func (s *Service) Wallet(ctx context.Context) models.WalletResponce {
	res := models.WalletResponce{WalletSession: s.Session.Snapshot()}
	res.BalanceText = humanize.FormatFloat("#,###.########", res.Balance)
	if msg, ok := s.Status.Current(); ok {
		res.Status = &msg
	}
	if s.Quote == nil || res.State != models.Connected {
		return res
	}
	converted, err := s.Quote.Convert(ctx, models.ConvertRequest{Amount: res.Balance, From: s.Coin, To: s.Fiat})
	if err != nil {
		s.log.WithError(err).Debug("Balance quote unavailable")
		return res
	}
	res.BalanceFiat = &converted.ConvertedAmount
	res.Fiat = converted.Currency
	return res
}
