package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/smartcontractkit/chainlink-common/pkg/logger"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/ton"

	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
)

// Network selects which public liteserver set to talk to.
type Network string

const (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

const (
	TestnetConfigURL = "https://ton.org/testnet-global.config.json"
	MainnetConfigURL = "https://ton.org/global.config.json"
)

func ParseNetwork(s string) (Network, error) {
	switch n := Network(strings.ToLower(strings.TrimSpace(s))); n {
	case Testnet, Mainnet:
		return n, nil
	default:
		return "", fmt.Errorf("unknown network %q, expected %q or %q", s, Testnet, Mainnet)
	}
}

func (n Network) IsTestnet() bool {
	return n == Testnet
}

// ResolveEndpoint returns the liteserver global config URL of a network.
func ResolveEndpoint(n Network) (string, error) {
	switch n {
	case Testnet:
		return TestnetConfigURL, nil
	case Mainnet:
		return MainnetConfigURL, nil
	default:
		return "", fmt.Errorf("%w: no endpoint known for network %q", tonutils.ErrNetwork, n)
	}
}

type DialOptions struct {
	ConfigAttempts uint          // Attempts to fetch the global config
	ConfigDelay    time.Duration // Base delay between config fetch attempts
}

var DefaultDialOptions = DialOptions{
	ConfigAttempts: 5,
	ConfigDelay:    time.Second,
}

// Dial fetches the liteserver global config, connects a pool to it and
// returns a proof-checked API client with the SDK's request retries enabled.
func Dial(ctx context.Context, lggr logger.Logger, configURL string, opts DialOptions) (ton.APIClientWrapped, error) {
	lggr = logger.Named(lggr, "Dial")

	cfg, err := retry.DoWithData(
		func() (*liteclient.GlobalConfig, error) {
			return liteclient.GetConfigFromUrl(ctx, configURL)
		},
		retry.Context(ctx),
		retry.Attempts(opts.ConfigAttempts),
		retry.Delay(opts.ConfigDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			lggr.Warnw("failed to fetch liteserver config", "url", configURL, "attempt", n+1, "err", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get config from %s: %w", tonutils.ErrNetwork, configURL, err)
	}

	pool := liteclient.NewConnectionPool()
	if err = pool.AddConnectionsFromConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to connect to liteservers: %w", tonutils.ErrNetwork, err)
	}

	api := ton.NewAPIClient(pool, ton.ProofCheckPolicyFast)
	api.SetTrustedBlockFromConfig(cfg)
	lggr.Debugw("connected to liteservers", "url", configURL, "liteservers", len(cfg.Liteservers))

	return api.WithRetry(), nil
}
