package key

import (
	"crypto"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
)

var mnemonicWordCounts = []int{12, 15, 18, 21, 24}

// Identity is the key pair derived from a mnemonic. The secret half is only
// reachable through PrivateKey and is wiped by Zero.
type Identity struct {
	Workchain int8
	PublicKey ed25519.PublicKey

	secret ed25519.PrivateKey
}

// DeriveIdentity derives the wallet key pair from a space separated TON
// mnemonic.
func DeriveIdentity(seedPhrase string, workchain int8) (*Identity, error) {
	words := strings.Fields(seedPhrase)
	if !slices.Contains(mnemonicWordCounts, len(words)) {
		return nil, fmt.Errorf("%w: expected 12, 15, 18, 21 or 24 words, got %d", tonutils.ErrInvalidMnemonic, len(words))
	}

	secret, err := wallet.SeedToPrivateKey(words, "", false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", tonutils.ErrInvalidMnemonic, err)
	}

	pub, ok := secret.Public().(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected public key type %T", tonutils.ErrInvalidMnemonic, secret.Public())
	}

	return &Identity{Workchain: workchain, PublicKey: pub, secret: secret}, nil
}

// PrivateKey returns the signing key, or nil once Zero was called.
func (i *Identity) PrivateKey() ed25519.PrivateKey {
	return i.secret
}

// Zero overwrites the secret key in place.
func (i *Identity) Zero() {
	clear(i.secret)
	i.secret = nil
}

func (i *Identity) String() string {
	pub, _ := PublicKeyHex(i.PublicKey)
	return fmt.Sprintf("Identity{workchain: %d, publicKey: %s}", i.Workchain, pub)
}

func PublicKeyHex(pubKey crypto.PublicKey) (string, error) {
	edKey, ok := pubKey.(ed25519.PublicKey)
	if !ok {
		return "", fmt.Errorf("unsupported key type: %T", pubKey)
	}
	return hex.EncodeToString(edKey), nil
}
