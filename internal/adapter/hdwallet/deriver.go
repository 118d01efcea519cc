// Package hdwallet derives one deposit address per order index from a single
// BIP-39/BIP-32 master seed on the path m/44'/60'/0'/0/i.
package hdwallet

import (
	"crypto/ecdsa"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"cryptopay-gateway/internal/core/ports"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/pbkdf2"
)

// BasePath is the account-level path; the order index is appended as the last, non-hardened element.
const BasePath = "m/44'/60'/0'/0"

// ReservoirIndex is reserved for the platform fee and gas reservoir address.
const ReservoirIndex uint32 = 0

// MaxIndex is the largest non-hardened child index.
const MaxIndex = hdkeychain.HardenedKeyStart - 1

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// Deriver implements ports.WalletDeriver.
type Deriver struct {
	account *hdkeychain.ExtendedKey

	mu    sync.RWMutex
	cache map[uint32]common.Address
}

// NewFromMnemonic builds a deriver from a BIP-39 mnemonic and optional passphrase.
func NewFromMnemonic(mnemonic, passphrase string) (*Deriver, error) {
	words := strings.Fields(strings.ToLower(mnemonic))
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return nil, fmt.Errorf("%w: expected 12-24 words, got %d", ErrInvalidMnemonic, len(words))
	}
	for _, w := range words {
		for _, r := range w {
			if r < 'a' || r > 'z' {
				return nil, fmt.Errorf("%w: word %q", ErrInvalidMnemonic, w)
			}
		}
	}
	seed := pbkdf2.Key([]byte(strings.Join(words, " ")), []byte("mnemonic"+passphrase), 2048, 64, sha512.New)
	return NewFromSeed(seed)
}

// NewFromSeedHex builds a deriver from a hex-encoded BIP-32 seed.
func NewFromSeedHex(seedHex string) (*Deriver, error) {
	seed, err := hex.DecodeString(strings.TrimPrefix(seedHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return NewFromSeed(seed)
}

// NewFromSeed builds a deriver from a raw BIP-32 seed (16 to 64 bytes).
func NewFromSeed(seed []byte) (*Deriver, error) {
	path, err := accounts.ParseDerivationPath(BasePath)
	if err != nil {
		return nil, fmt.Errorf("parsing derivation path: %w", err)
	}

	key, err := deriveKey(seed, path)
	if err != nil {
		return nil, err
	}

	return &Deriver{
		account: key,
		cache:   make(map[uint32]common.Address),
	}, nil
}

// deriveKey walks path from the master key of seed. Derive pads private keys
// with leading zero bytes to 32 bytes before hashing, as BIP-32 requires.
func deriveKey(seed []byte, path accounts.DerivationPath) (*hdkeychain.ExtendedKey, error) {
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("creating master key: %w", err)
	}
	for _, n := range path {
		key, err = key.Derive(n)
		if err != nil {
			return nil, fmt.Errorf("deriving %s: %w", path, err)
		}
	}
	return key, nil
}

// DeriveAddress returns the address at m/44'/60'/0'/0/index.
func (d *Deriver) DeriveAddress(index uint32) common.Address {
	d.mu.RLock()
	addr, ok := d.cache[index]
	d.mu.RUnlock()
	if ok {
		return addr
	}

	key := d.privateKey(index)
	addr = crypto.PubkeyToAddress(key.PublicKey)

	d.mu.Lock()
	d.cache[index] = addr
	d.mu.Unlock()
	return addr
}

// DeriveSigner returns a signer for the address at index. Keys are derived on
// demand and not retained by the deriver.
func (d *Deriver) DeriveSigner(index uint32) ports.Signer {
	key := d.privateKey(index)
	return &Signer{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// Path returns the full derivation path for index.
func Path(index uint32) string {
	return fmt.Sprintf("%s/%d", BasePath, index)
}

// privateKey panics on failure: a valid account key derives every
// non-hardened child except with negligible probability (BIP-32 invalid child).
func (d *Deriver) privateKey(index uint32) *ecdsa.PrivateKey {
	if index > MaxIndex {
		panic(fmt.Sprintf("hdwallet: index %d is outside the non-hardened range", index))
	}
	child, err := d.account.Derive(index)
	if err != nil {
		panic(fmt.Sprintf("hdwallet: deriving %s: %v", Path(index), err))
	}
	priv, err := child.ECPrivKey()
	if err != nil {
		panic(fmt.Sprintf("hdwallet: private key for %s: %v", Path(index), err))
	}
	key, err := crypto.ToECDSA(priv.Serialize())
	if err != nil {
		panic(fmt.Sprintf("hdwallet: converting key for %s: %v", Path(index), err))
	}
	return key
}

// Signer implements ports.Signer for one derived key.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// Address returns the signer's address.
func (s *Signer) Address() common.Address {
	return s.address
}

// SignTx signs tx with the EIP-155 signer for chainID.
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}
