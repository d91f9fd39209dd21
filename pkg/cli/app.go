package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/smartcontractkit/chainlink-common/pkg/logger"
	"github.com/xssnick/tonutils-go/ton"

	"github.com/smartcontractkit/ton-wallet/pkg/client"
	"github.com/smartcontractkit/ton-wallet/pkg/config"
	"github.com/smartcontractkit/ton-wallet/pkg/ton/key"
	"github.com/smartcontractkit/ton-wallet/pkg/ton/resolver"
	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
	"github.com/smartcontractkit/ton-wallet/pkg/txm"
)

// Backend is everything the commands need from the network.
type Backend interface {
	tonutils.ChainReader
	// Sender opens the wallet contract of id for signing. Only send calls it.
	Sender(ctx context.Context, r resolver.Resolver, id *key.Identity) (txm.Sender, error)
}

// BackendFactory is called once the configuration is valid, never before.
type BackendFactory func(cfg *config.Config, lggr logger.Logger) Backend

// App holds the process level dependencies of the commands.
type App struct {
	Out    io.Writer
	Err    io.Writer
	Lookup config.LookupFunc
	// Logger overrides the logger built from --log-level.
	Logger     logger.Logger
	NewBackend BackendFactory
}

func NewApp() *App {
	return &App{
		Out:        os.Stdout,
		Err:        os.Stderr,
		Lookup:     os.LookupEnv,
		NewBackend: NewLiteBackend,
	}
}

func (a *App) withDefaults() *App {
	c := *a
	if c.Out == nil {
		c.Out = io.Discard
	}
	if c.Err == nil {
		c.Err = io.Discard
	}
	if c.Lookup == nil {
		c.Lookup = os.LookupEnv
	}
	if c.NewBackend == nil {
		c.NewBackend = NewLiteBackend
	}
	return &c
}

type liteBackend struct {
	*client.MultiClient
}

// NewLiteBackend talks to the liteservers listed in cfg.ConfigURL. The
// connection is made on the first query.
func NewLiteBackend(cfg *config.Config, lggr logger.Logger) Backend {
	configURL := cfg.ConfigURL
	return &liteBackend{
		MultiClient: client.NewMultiClient(func(ctx context.Context) (ton.APIClientWrapped, error) {
			return client.Dial(ctx, lggr, configURL, client.DefaultDialOptions)
		}),
	}
}

func (b *liteBackend) Sender(ctx context.Context, r resolver.Resolver, id *key.Identity) (txm.Sender, error) {
	api, err := b.API(ctx)
	if err != nil {
		return nil, err
	}
	w, err := r.Open(api, id)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet: %w", err)
	}
	return txm.WalletSender{Wallet: w}, nil
}
