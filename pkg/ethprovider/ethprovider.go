package ethprovider

import (
	"context"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"wallet_transfer_back/internal/wallet"
)

const transferGas = 21000

var (
	ErrNotInitialized    = errors.New("provider is not initialized")
	ErrInvalidAddress    = errors.New("invalid recipient address")
	ErrInvalidAmount     = errors.New("invalid transfer amount")
	ErrInsufficientFunds = errors.New("insufficient funds for transfer and gas")
)

// ChainClient is the subset of *ethclient.Client the provider uses.
type ChainClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	Close()
}

type Dialer func(ctx context.Context, rpcURL string) (ChainClient, error)

func DialRPC(ctx context.Context, rpcURL string) (ChainClient, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// KeySource отдаёт приватный ключ в hex; вызывается при каждом Initialize
type KeySource func() (string, error)

// Provider кошелёк поверх Ethereum JSON-RPC, подписывает переводы настроенным ключом
type Provider struct {
	rpcURL    string
	keySource KeySource
	dial      Dialer
	log       logrus.FieldLogger

	mu      sync.Mutex
	client  ChainClient
	chainID *big.Int
	wallet  *wallet.Wallet
}

func NewProvider(rpcURL string, keySource KeySource, dial Dialer, log logrus.FieldLogger) *Provider {
	if dial == nil {
		dial = DialRPC
	}
	return &Provider{
		rpcURL:    rpcURL,
		keySource: keySource,
		dial:      dial,
		log:       log,
	}
}

func (p *Provider) Initialize(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.wallet == nil {
		privHex, err := p.keySource()
		if err != nil {
			return errors.Wrap(err, "read private key")
		}
		w, err := wallet.FromPrivateKeyHex(privHex)
		if err != nil {
			return errors.Wrap(err, "load private key")
		}
		p.wallet = w
	}

	if p.client != nil {
		p.client.Close()
		p.client = nil
	}

	client, err := p.dial(ctx, p.rpcURL)
	if err != nil {
		return errors.Wrapf(err, "dial %s", p.rpcURL)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return errors.Wrap(err, "chain id")
	}

	p.client = client
	p.chainID = chainID
	p.log.WithFields(logrus.Fields{
		"chain_id": chainID.String(),
		"address":  p.wallet.Address.Hex(),
	}).Info("Ethereum provider initialized")
	return nil
}

func (p *Provider) Address(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil || p.wallet == nil {
		return "", ErrNotInitialized
	}
	return p.wallet.Address.Hex(), nil
}

// Balance возвращает баланс в эфирах
func (p *Provider) Balance(ctx context.Context) (float64, error) {
	client, w, _, err := p.handle()
	if err != nil {
		return 0, err
	}
	wei, err := client.BalanceAt(ctx, w.Address, nil)
	if err != nil {
		return 0, errors.Wrap(err, "balance")
	}
	return WeiToEther(wei), nil
}

func (p *Provider) Transfer(ctx context.Context, toAddress string, amount float64) (string, error) {
	client, w, chainID, err := p.handle()
	if err != nil {
		return "", err
	}
	if !common.IsHexAddress(toAddress) {
		return "", errors.Wrap(ErrInvalidAddress, toAddress)
	}
	value, err := EtherToWei(amount)
	if err != nil {
		return "", err
	}

	nonce, err := client.PendingNonceAt(ctx, w.Address)
	if err != nil {
		return "", errors.Wrap(err, "pending nonce")
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return "", errors.Wrap(err, "gas price")
	}

	balance, err := client.BalanceAt(ctx, w.Address, nil)
	if err != nil {
		return "", errors.Wrap(err, "balance")
	}
	cost := new(big.Int).Mul(gasPrice, big.NewInt(transferGas))
	cost.Add(cost, value)
	if balance.Cmp(cost) < 0 {
		return "", errors.Wrapf(ErrInsufficientFunds, "have %s wei, need %s wei", balance, cost)
	}

	to := common.HexToAddress(toAddress)
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    value,
		Gas:      transferGas,
		GasPrice: gasPrice,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), w.PrivateKey)
	if err != nil {
		return "", errors.Wrap(err, "sign transaction")
	}
	if err := client.SendTransaction(ctx, signed); err != nil {
		return "", errors.Wrap(err, "send transaction")
	}

	p.log.WithFields(logrus.Fields{
		"tx_hash": signed.Hash().Hex(),
		"nonce":   nonce,
		"to":      to.Hex(),
	}).Info("Transaction broadcast")
	return signed.Hash().Hex(), nil
}

// Disconnect закрывает RPC-соединение, ключ остаётся для следующего Initialize
func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return ErrNotInitialized
	}
	p.client.Close()
	p.client = nil
	p.chainID = nil
	return nil
}

// DisconnectProvider закрывает соединение и забывает ключ
func (p *Provider) DisconnectProvider(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Close()
	}
	p.client = nil
	p.chainID = nil
	p.wallet = nil
	return nil
}

func (p *Provider) handle() (ChainClient, *wallet.Wallet, *big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil || p.wallet == nil {
		return nil, nil, nil, ErrNotInitialized
	}
	return p.client, p.wallet, p.chainID, nil
}

func WeiToEther(wei *big.Int) float64 {
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether)).Float64()
	return f
}

// EtherToWei переводит сумму в wei через десятичную строку, чтобы 0.1 не превратилось в 99999999999999999
func EtherToWei(amount float64) (*big.Int, error) {
	if amount <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%v", amount)
	}
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 18 {
		frac = frac[:18]
	}
	frac += strings.Repeat("0", 18-len(frac))

	wei, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAmount, "%v", amount)
	}
	if wei.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidAmount, "%v is below 1 wei", amount)
	}
	return wei, nil
}
