package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/xssnick/tonutils-go/ton/wallet"
)

// DefaultWalletVersion matches the contract the wallet apps create for a
// fresh mnemonic.
const DefaultWalletVersion = "v4r2"

var walletVersions = map[string]wallet.VersionConfig{
	"v3r2": wallet.V3R2,
	"v4r2": wallet.V4R2,
}

// WalletVersion resolves a wallet contract version by name, case-insensitive.
func WalletVersion(name string) (wallet.VersionConfig, error) {
	v, ok := walletVersions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported wallet version %q, expected one of %v", name, WalletVersionNames())
	}
	return v, nil
}

// WalletVersionNames lists the supported version names in sorted order.
func WalletVersionNames() []string {
	return slices.Sorted(maps.Keys(walletVersions))
}
