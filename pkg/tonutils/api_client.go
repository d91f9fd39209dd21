package tonutils

import (
	"context"
	"fmt"
	"math/big"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
)

// BlockchainAPI is the part of ton.APIClientWrapped the facade reads from.
type BlockchainAPI interface {
	CurrentMasterchainInfo(ctx context.Context) (*ton.BlockIDExt, error)
	GetAccount(ctx context.Context, block *ton.BlockIDExt, addr *address.Address) (*tlb.Account, error)
	RunGetMethod(ctx context.Context, block *ton.BlockIDExt, addr *address.Address, method string, params ...any) (*ton.ExecutionResult, error)
}

// ChainReader answers the three questions the wallet commands ask the network.
type ChainReader interface {
	IsDeployed(ctx context.Context, addr *address.Address) (bool, error)
	GetSeqno(ctx context.Context, addr *address.Address) (uint32, error)
	GetBalance(ctx context.Context, addr *address.Address) (tlb.Coins, error)
}

var _ ChainReader = (*APIClient)(nil)

// APIClient is a ChainReader over a liteserver API client. Transport failures
// are wrapped with ErrNetwork and never retried here.
type APIClient struct {
	Client BlockchainAPI
}

func NewAPIClient(client BlockchainAPI) *APIClient {
	return &APIClient{Client: client}
}

func (c *APIClient) IsDeployed(ctx context.Context, addr *address.Address) (bool, error) {
	acc, _, err := c.account(c.sticky(ctx), addr)
	if err != nil {
		return false, err
	}
	return isActive(acc), nil
}

// GetSeqno runs the wallet's seqno getter. Accounts without active state fail
// with ErrContractNotDeployed.
func (c *APIClient) GetSeqno(ctx context.Context, addr *address.Address) (uint32, error) {
	ctx = c.sticky(ctx)
	acc, block, err := c.account(ctx, addr)
	if err != nil {
		return 0, err
	}
	if !isActive(acc) {
		return 0, fmt.Errorf("%w: cannot read seqno of %s", ErrContractNotDeployed, addr.String())
	}

	seqno, err := Uint32From(c.Client.RunGetMethod(ctx, block, addr, "seqno"))
	if err != nil {
		return 0, fmt.Errorf("failed to read seqno of %s: %w", addr.String(), err)
	}
	return seqno, nil
}

// GetBalance returns zero coins for addresses with no on-chain state.
func (c *APIClient) GetBalance(ctx context.Context, addr *address.Address) (tlb.Coins, error) {
	acc, _, err := c.account(c.sticky(ctx), addr)
	if err != nil {
		return tlb.Coins{}, err
	}
	if acc == nil || !acc.IsActive || acc.State == nil {
		return tlb.FromNanoTON(big.NewInt(0)), nil
	}
	return acc.State.Balance, nil
}

func (c *APIClient) account(ctx context.Context, addr *address.Address) (*tlb.Account, *ton.BlockIDExt, error) {
	block, err := c.Client.CurrentMasterchainInfo(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to get masterchain info: %w", ErrNetwork, err)
	}

	acc, err := c.Client.GetAccount(ctx, block, addr)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to get account %s: %w", ErrNetwork, addr.String(), err)
	}
	return acc, block, nil
}

// sticky pins consecutive queries to one liteserver so the block we read the
// masterchain info from is known to the node we run the getter on.
func (c *APIClient) sticky(ctx context.Context) context.Context {
	if wrapped, ok := c.Client.(interface{ Client() ton.LiteClient }); ok {
		return wrapped.Client().StickyContext(ctx)
	}
	return ctx
}

func isActive(acc *tlb.Account) bool {
	return acc != nil && acc.IsActive && acc.State != nil && acc.State.Status == tlb.AccountStatusActive
}
