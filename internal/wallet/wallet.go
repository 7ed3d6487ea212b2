package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet структура с приватным ключом и адресом
type Wallet struct {
	PrivateKey *ecdsa.PrivateKey
	Address    common.Address
}

// FromPrivateKeyHex восстанавливает кошелёк из приватного ключа в hex (с 0x или без)
func FromPrivateKeyHex(privKeyHex string) (*Wallet, error) {
	privKeyHex = strings.TrimPrefix(strings.TrimSpace(privKeyHex), "0x")
	if privKeyHex == "" {
		return nil, fmt.Errorf("private key is empty")
	}

	privKey, err := crypto.HexToECDSA(privKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to ECDSA: %v", err)
	}

	return &Wallet{
		PrivateKey: privKey,
		Address:    crypto.PubkeyToAddress(privKey.PublicKey),
	}, nil
}

// Generate создаёт новый кошелёк, нужен для локальной разработки
func Generate() (*Wallet, error) {
	privKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &Wallet{
		PrivateKey: privKey,
		Address:    crypto.PubkeyToAddress(privKey.PublicKey),
	}, nil
}

// PrivateKeyHex returns the key without the 0x prefix.
func (w *Wallet) PrivateKeyHex() string {
	return fmt.Sprintf("%x", crypto.FromECDSA(w.PrivateKey))
}
