package ethprovider

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	devKey     = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	recipient  = "0x1111111111111111111111111111111111111111"
)

type fakeChain struct {
	chainID  *big.Int
	balance  *big.Int
	nonce    uint64
	gasPrice *big.Int
	sendErr  error

	sent   []*types.Transaction
	closed int
}

func (c *fakeChain) ChainID(ctx context.Context) (*big.Int, error) { return c.chainID, nil }

func (c *fakeChain) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	return c.balance, nil
}

func (c *fakeChain) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.nonce, nil
}

func (c *fakeChain) SuggestGasPrice(ctx context.Context) (*big.Int, error) { return c.gasPrice, nil }

func (c *fakeChain) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, tx)
	return nil
}

func (c *fakeChain) Close() { c.closed++ }

func newTestProvider(chain *fakeChain) (*Provider, *int) {
	dials := 0
	logger, _ := test.NewNullLogger()
	p := NewProvider("http://127.0.0.1:8545",
		func() (string, error) { return devKey, nil },
		func(ctx context.Context, rpcURL string) (ChainClient, error) {
			dials++
			return chain, nil
		},
		logger,
	)
	return p, &dials
}

func TestProvider_NotInitialized(t *testing.T) {
	p, _ := newTestProvider(&fakeChain{})

	_, err := p.Address(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = p.Balance(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = p.Transfer(context.Background(), recipient, 1)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, p.Disconnect(context.Background()), ErrNotInitialized)
}

func TestProvider_InitializeAddressBalance(t *testing.T) {
	chain := &fakeChain{
		chainID: big.NewInt(1337),
		balance: new(big.Int).Mul(big.NewInt(5), big.NewInt(params.Ether/2)),
	}
	p, dials := newTestProvider(chain)

	require.NoError(t, p.Initialize(context.Background()))
	assert.Equal(t, 1, *dials)

	addr, err := p.Address(context.Background())
	require.NoError(t, err)
	assert.Equal(t, devAddress, addr)

	balance, err := p.Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.5, balance)
}

func TestProvider_TransferSignsForChain(t *testing.T) {
	chain := &fakeChain{
		chainID:  big.NewInt(1337),
		balance:  big.NewInt(params.Ether),
		nonce:    7,
		gasPrice: big.NewInt(params.GWei),
	}
	p, _ := newTestProvider(chain)
	require.NoError(t, p.Initialize(context.Background()))

	hash, err := p.Transfer(context.Background(), recipient, 0.5)
	require.NoError(t, err)
	require.Len(t, chain.sent, 1)

	tx := chain.sent[0]
	assert.Equal(t, tx.Hash().Hex(), hash)
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(transferGas), tx.Gas())
	assert.Equal(t, common.HexToAddress(recipient), *tx.To())
	assert.Equal(t, 0, tx.Value().Cmp(big.NewInt(params.Ether/2)))

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1337)), tx)
	require.NoError(t, err)
	assert.Equal(t, devAddress, sender.Hex())
}

func TestProvider_TransferFailures(t *testing.T) {
	chain := &fakeChain{
		chainID:  big.NewInt(1),
		balance:  big.NewInt(1000),
		gasPrice: big.NewInt(1),
	}
	p, _ := newTestProvider(chain)
	require.NoError(t, p.Initialize(context.Background()))

	_, err := p.Transfer(context.Background(), "nope", 0.1)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = p.Transfer(context.Background(), recipient, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = p.Transfer(context.Background(), recipient, 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	chain.balance = big.NewInt(params.Ether)
	chain.sendErr = errors.New("nonce too low")
	_, err = p.Transfer(context.Background(), recipient, 0.1)
	assert.ErrorIs(t, err, chain.sendErr)
	assert.Empty(t, chain.sent)
}

func TestProvider_DisconnectKeepsKeyRevokeForgetsIt(t *testing.T) {
	chain := &fakeChain{chainID: big.NewInt(1), balance: big.NewInt(0)}
	keyReads := 0
	logger, _ := test.NewNullLogger()
	p := NewProvider("ws://node",
		func() (string, error) {
			keyReads++
			return devKey, nil
		},
		func(ctx context.Context, rpcURL string) (ChainClient, error) { return chain, nil },
		logger,
	)

	require.NoError(t, p.Initialize(context.Background()))
	require.NoError(t, p.Disconnect(context.Background()))
	assert.Equal(t, 1, chain.closed)
	_, err := p.Address(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, p.Initialize(context.Background()))
	assert.Equal(t, 1, keyReads, "soft disconnect keeps the key")

	require.NoError(t, p.DisconnectProvider(context.Background()))
	require.NoError(t, p.Initialize(context.Background()))
	assert.Equal(t, 2, keyReads, "revocation forgets the key")
}

func TestProvider_InitializeErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()

	p := NewProvider("http://node", func() (string, error) { return "", errors.New("WALLET_PRIVATE_KEY is empty") }, nil, logger)
	assert.Error(t, p.Initialize(context.Background()))

	dialErr := errors.New("connection refused")
	p = NewProvider("http://node",
		func() (string, error) { return devKey, nil },
		func(ctx context.Context, rpcURL string) (ChainClient, error) { return nil, dialErr },
		logger,
	)
	assert.ErrorIs(t, p.Initialize(context.Background()), dialErr)
}

func TestEtherToWei(t *testing.T) {
	testCases := []struct {
		amount float64
		wei    string
	}{
		{amount: 1, wei: "1000000000000000000"},
		{amount: 0.1, wei: "100000000000000000"},
		{amount: 0.5, wei: "500000000000000000"},
		{amount: 0.00000001, wei: "10000000000"},
		{amount: 2.123456789, wei: "2123456789000000000"},
	}
	for _, tc := range testCases {
		wei, err := EtherToWei(tc.amount)
		require.NoError(t, err)
		assert.Equal(t, tc.wei, wei.String(), "amount %v", tc.amount)
	}

	_, err := EtherToWei(-1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestWeiToEther(t *testing.T) {
	assert.Equal(t, 1.5, WeiToEther(big.NewInt(1500000000000000000)))
	assert.Equal(t, 0.0, WeiToEther(big.NewInt(0)))
}
