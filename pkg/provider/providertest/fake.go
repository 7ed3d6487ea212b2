// Package providertest contains an in-memory provider.Provider for tests.
package providertest

import (
	"context"
	"sync"
)

type TransferCall struct {
	ToAddress string
	Amount    float64
}

// Fake records every call. Errors set on the fields are returned by the matching
// method; a non-nil gate channel blocks the call until it is closed or receives.
type Fake struct {
	mu sync.Mutex

	AddressValue string
	BalanceValue float64
	TxHash       string

	InitErr               error
	AddressErr            error
	BalanceErr            error
	TransferErr           error
	DisconnectErr         error
	DisconnectProviderErr error

	InitGate     chan struct{}
	TransferGate chan struct{}

	InitCalls               int
	AddressCalls            int
	BalanceCalls            int
	DisconnectCalls         int
	DisconnectProviderCalls int
	Transfers               []TransferCall

	inFlightInit    int
	MaxInFlightInit int
}

func (f *Fake) Initialize(ctx context.Context) error {
	f.mu.Lock()
	f.InitCalls++
	f.inFlightInit++
	if f.inFlightInit > f.MaxInFlightInit {
		f.MaxInFlightInit = f.inFlightInit
	}
	gate := f.InitGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlightInit--
	return f.InitErr
}

func (f *Fake) Address(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AddressCalls++
	if f.AddressErr != nil {
		return "", f.AddressErr
	}
	return f.AddressValue, nil
}

func (f *Fake) Balance(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BalanceCalls++
	if f.BalanceErr != nil {
		return 0, f.BalanceErr
	}
	return f.BalanceValue, nil
}

func (f *Fake) Transfer(ctx context.Context, toAddress string, amount float64) (string, error) {
	f.mu.Lock()
	f.Transfers = append(f.Transfers, TransferCall{ToAddress: toAddress, Amount: amount})
	gate := f.TransferGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.TransferErr != nil {
		return "", f.TransferErr
	}
	return f.TxHash, nil
}

func (f *Fake) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DisconnectCalls++
	return f.DisconnectErr
}

func (f *Fake) DisconnectProvider(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DisconnectProviderCalls++
	return f.DisconnectProviderErr
}

// TransferCalls returns a copy of the recorded transfers.
func (f *Fake) TransferCalls() []TransferCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]TransferCall, len(f.Transfers))
	copy(out, f.Transfers)
	return out
}

func (f *Fake) InitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.InitCalls
}

// SetBalance changes the balance returned by later Balance calls.
func (f *Fake) SetBalance(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BalanceValue = v
}

func (f *Fake) SetBalanceErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.BalanceErr = err
}
