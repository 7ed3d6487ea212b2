package transfer

import (
	"context"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"wallet_transfer_back/models"
	"wallet_transfer_back/pkg/exporter"
	"wallet_transfer_back/pkg/provider"
	"wallet_transfer_back/pkg/session"
)

var (
	ErrSubmissionInProgress = errors.New("a transfer is already in flight")
	ErrFormLocked           = errors.New("form is locked while a transfer is in flight")
)

// Session is the slice of the session manager the submitter depends on.
type Session interface {
	Connected() bool
	RefreshBalance(ctx context.Context) error
}

type StatusShower interface {
	Show(text string)
}

// Messages тексты статусов для пользователя
type Messages struct {
	Success       string
	Failure       string
	InvalidFields string
}

func DefaultMessages() Messages {
	return Messages{
		Success:       "Transacción enviada con éxito!",
		Failure:       "Error enviando la transacción.",
		InvalidFields: "Por favor, completa todos los campos correctamente",
	}
}

// ErrNotConnected is returned by Submit when no wallet session is open.
var ErrNotConnected = session.ErrNotConnected

// Submitter владеет формой перевода и блокировкой на время отправки
type Submitter struct {
	provider provider.Provider
	sess     Session
	status   StatusShower
	log      logrus.FieldLogger
	messages Messages
	now      func() time.Time

	mu     sync.Mutex
	form   models.TransferForm
	locked bool
}

func NewSubmitter(p provider.Provider, sess Session, status StatusShower, log logrus.FieldLogger, messages Messages) *Submitter {
	defaults := DefaultMessages()
	if messages.Success == "" {
		messages.Success = defaults.Success
	}
	if messages.Failure == "" {
		messages.Failure = defaults.Failure
	}
	if messages.InvalidFields == "" {
		messages.InvalidFields = defaults.InvalidFields
	}
	return &Submitter{
		provider: p,
		sess:     sess,
		status:   status,
		log:      log,
		messages: messages,
		now:      time.Now,
	}
}

// SetForm заменяет значения полей; во время отправки форма недоступна
func (s *Submitter) SetForm(toAddress, amount string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return ErrFormLocked
	}
	s.form = models.TransferForm{ToAddress: toAddress, Amount: amount}
	return nil
}

func (s *Submitter) Form() models.TransferForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

func (s *Submitter) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Submit проверяет форму и отправляет перевод через провайдера.
// Форма блокируется только на время вызова провайдера.
func (s *Submitter) Submit(ctx context.Context) (models.TransferReceipt, error) {
	return s.SubmitWith(ctx, models.SendInput{})
}

// SubmitWith is Submit with the given fields written into the form first;
// nil fields keep their stored value. The merge, validation and lock are one step.
func (s *Submitter) SubmitWith(ctx context.Context, in models.SendInput) (models.TransferReceipt, error) {
	req, err := s.acquire(in)
	if err != nil {
		return models.TransferReceipt{}, err
	}
	defer s.release()

	txHash, err := s.provider.Transfer(ctx, req.ToAddress, req.Amount)
	if err != nil {
		exporter.IncTransfer("error")
		exporter.IncProviderError("transfer")
		s.log.WithError(err).WithFields(logrus.Fields{
			"to":     req.ToAddress,
			"amount": req.Amount,
		}).Error("Error sending transaction")
		s.status.Show(s.messages.Failure)
		return models.TransferReceipt{}, pkgerrors.Wrap(err, "transfer")
	}

	exporter.IncTransfer("ok")
	s.log.WithFields(logrus.Fields{
		"to":      req.ToAddress,
		"amount":  req.Amount,
		"tx_hash": txHash,
	}).Info("Transaction sent")

	if err := s.sess.RefreshBalance(ctx); err != nil {
		s.log.WithError(err).Warn("Balance was not refreshed after transfer")
	}

	s.mu.Lock()
	s.form = models.TransferForm{}
	s.mu.Unlock()

	s.status.Show(s.messages.Success)
	return models.TransferReceipt{
		TxHash:    txHash,
		ToAddress: req.ToAddress,
		Amount:    req.Amount,
		SentAt:    s.now(),
	}, nil
}

// acquire runs every pre-flight check and takes the lock in one critical section.
func (s *Submitter) acquire(in models.SendInput) (models.TransferRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		exporter.IncReject("in_progress")
		s.log.Warn("Transaction is already being sent")
		return models.TransferRequest{}, ErrSubmissionInProgress
	}

	if in.ToAddress != nil {
		s.form.ToAddress = *in.ToAddress
	}
	if in.Amount != nil {
		s.form.Amount = *in.Amount
	}

	req, err := ParseForm(s.form)
	if err != nil {
		exporter.IncReject("invalid")
		s.status.Show(s.messages.InvalidFields)
		return models.TransferRequest{}, err
	}

	if !s.sess.Connected() {
		exporter.IncReject("not_connected")
		s.log.Warn("Wallet is not connected. Please connect the wallet first.")
		return models.TransferRequest{}, ErrNotConnected
	}

	s.locked = true
	return req, nil
}

func (s *Submitter) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
}
