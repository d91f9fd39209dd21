package resolver

import (
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/smartcontractkit/ton-wallet/pkg/ton/key"
)

// Descriptor is the on-chain address of a wallet in the forms the commands
// print and query with.
type Descriptor struct {
	Workchain int32
	Raw       []byte           // 32 byte account id
	Display   string           // user-friendly, bounceable, testnet flag per network
	Address   *address.Address // for RPC calls
}

func Describe(addr *address.Address, testnet bool) Descriptor {
	return Descriptor{
		Workchain: addr.Workchain(),
		Raw:       addr.Data(),
		Display:   addr.Testnet(testnet).String(),
		Address:   addr,
	}
}

// Resolver binds identities to a wallet contract version.
type Resolver struct {
	Version wallet.VersionConfig
	Testnet bool
}

func New(version wallet.VersionConfig, testnet bool) Resolver {
	return Resolver{Version: version, Testnet: testnet}
}

// Address derives the wallet address. It is a pure function of the version,
// the workchain and the public key; no API client is attached.
func (r Resolver) Address(id *key.Identity) (Descriptor, error) {
	w, err := r.wallet(nil, id)
	if err != nil {
		return Descriptor{}, err
	}
	return Describe(w.WalletAddress(), r.Testnet), nil
}

// Open returns a wallet contract handle able to sign and send through api.
func (r Resolver) Open(api wallet.TonAPI, id *key.Identity) (*wallet.Wallet, error) {
	if api == nil {
		return nil, fmt.Errorf("cannot open wallet without an API client")
	}
	return r.wallet(api, id)
}

func (r Resolver) wallet(api wallet.TonAPI, id *key.Identity) (*wallet.Wallet, error) {
	if id.PrivateKey() == nil {
		return nil, fmt.Errorf("identity key material was already released")
	}
	w, err := wallet.FromPrivateKeyWithOptions(api, id.PrivateKey(), r.Version, wallet.WithWorkchain(id.Workchain))
	if err != nil {
		return nil, fmt.Errorf("failed to create %v wallet from private key: %w", r.Version, err)
	}
	return w, nil
}
