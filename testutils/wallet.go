package testutils

import (
	"strings"
	"testing"

	"github.com/xssnick/tonutils-go/ton/wallet"
)

// Address used across tests as a transfer destination.
const DestinationAddress = "EQDtFpEwcFAEcRe5mLVh2N6C0x-_hJEM7W61_JLnSF74p4q2"

// NewSeedPhrase returns a freshly generated 24 word TON mnemonic.
func NewSeedPhrase(t *testing.T) string {
	t.Helper()
	return strings.Join(wallet.NewSeed(), " ")
}

// Env is an in-memory environment usable as a config.LookupFunc.
type Env map[string]string

func (e Env) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Known V4R2 wallet on workchain 0 derived from KnownSeedPhrase.
const (
	KnownSeedPhrase        = "giraffe soccer exotic sadness angry satoshi promote doctor odor joke rose deal nice inflict engine kiwi wheat eyebrow force envelope obvious tip weasel scan"
	KnownPublicKeyHex      = "3ecbef48774a3431b591294dd80a94b85ef5fa00b908280064a971af74a2085b"
	KnownRawAddress        = "0:1cb0bac7f357bf5a1de7ac7ed3777aeaa6d32c58d679cee786cfb23baad035a8"
	KnownTestnetAddress    = "kQAcsLrH81e_Wh3nrH7Td3rqptMsWNZ5zueGz7I7qtA1qGz6"
	KnownMainnetAddress    = "EQAcsLrH81e_Wh3nrH7Td3rqptMsWNZ5zueGz7I7qtA1qNdw"
	DefaultV4R2SubwalletID = 698983191
)
