package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"

	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
)

var _ tonutils.ChainReader = (*MultiClient)(nil)

// MultiClient - lazy wrapper over the liteserver connection. Nothing is dialled
// until the first query, and a successful connection is reused afterwards.
// Failed dials are not cached, the next call tries again.
type MultiClient struct {
	getClient func(context.Context) (ton.APIClientWrapped, error)

	mu  sync.Mutex
	api ton.APIClientWrapped
}

func NewMultiClient(getClient func(context.Context) (ton.APIClientWrapped, error)) *MultiClient {
	return &MultiClient{
		getClient: getClient,
	}
}

// API returns the underlying client, dialling it on first use.
func (m *MultiClient) API(ctx context.Context) (ton.APIClientWrapped, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.api != nil {
		return m.api, nil
	}
	api, err := m.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	m.api = api
	return api, nil
}

func (m *MultiClient) reader(ctx context.Context) (*tonutils.APIClient, error) {
	api, err := m.API(ctx)
	if err != nil {
		return nil, err
	}
	return tonutils.NewAPIClient(api), nil
}

func (m *MultiClient) IsDeployed(ctx context.Context, addr *address.Address) (bool, error) {
	r, err := m.reader(ctx)
	if err != nil {
		return false, err
	}
	return r.IsDeployed(ctx, addr)
}

func (m *MultiClient) GetSeqno(ctx context.Context, addr *address.Address) (uint32, error) {
	r, err := m.reader(ctx)
	if err != nil {
		return 0, err
	}
	return r.GetSeqno(ctx, addr)
}

func (m *MultiClient) GetBalance(ctx context.Context, addr *address.Address) (tlb.Coins, error) {
	r, err := m.reader(ctx)
	if err != nil {
		return tlb.Coins{}, err
	}
	return r.GetBalance(ctx, addr)
}
