package tonutils

import (
	"context"
	"fmt"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
)

// WalletStatus is the tagged result of inspecting a wallet. Seqno and Balance
// are only meaningful when Deployed is true.
type WalletStatus struct {
	Deployed bool
	Seqno    uint32
	Balance  tlb.Coins
}

// Inspect is the single place deciding what "not deployed" means. An
// undeployed wallet is a regular result, not an error; seqno and balance are
// not queried for it.
func Inspect(ctx context.Context, r ChainReader, addr *address.Address) (WalletStatus, error) {
	deployed, err := r.IsDeployed(ctx, addr)
	if err != nil {
		return WalletStatus{}, fmt.Errorf("failed to check deployment of %s: %w", addr.String(), err)
	}
	if !deployed {
		return WalletStatus{}, nil
	}

	seqno, err := r.GetSeqno(ctx, addr)
	if err != nil {
		return WalletStatus{}, fmt.Errorf("failed to get seqno of %s: %w", addr.String(), err)
	}

	balance, err := r.GetBalance(ctx, addr)
	if err != nil {
		return WalletStatus{}, fmt.Errorf("failed to get balance of %s: %w", addr.String(), err)
	}

	return WalletStatus{Deployed: true, Seqno: seqno, Balance: balance}, nil
}

// RequireDeployed turns a negative deployment check into ErrContractNotDeployed
// for callers that cannot continue without an active wallet.
func RequireDeployed(ctx context.Context, r ChainReader, addr *address.Address) error {
	deployed, err := r.IsDeployed(ctx, addr)
	if err != nil {
		return fmt.Errorf("failed to check deployment of %s: %w", addr.String(), err)
	}
	if !deployed {
		return fmt.Errorf("%w: wallet %s has no active state", ErrContractNotDeployed, addr.String())
	}
	return nil
}
