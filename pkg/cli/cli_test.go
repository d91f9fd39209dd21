package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/smartcontractkit/chainlink-common/pkg/logger"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/smartcontractkit/ton-wallet/pkg/cli"
	"github.com/smartcontractkit/ton-wallet/pkg/config"
	"github.com/smartcontractkit/ton-wallet/pkg/ton/key"
	"github.com/smartcontractkit/ton-wallet/pkg/ton/resolver"
	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
	"github.com/smartcontractkit/ton-wallet/pkg/txm"
	"github.com/smartcontractkit/ton-wallet/testutils"
)

type fakeBackend struct {
	*testutils.FakeChain
	sender *testutils.FakeSender
}

func (b *fakeBackend) Sender(context.Context, resolver.Resolver, *key.Identity) (txm.Sender, error) {
	return b.sender, nil
}

type harness struct {
	app      *cli.App
	out      *bytes.Buffer
	err      *bytes.Buffer
	chain    *testutils.FakeChain
	sender   *testutils.FakeSender
	backends int
}

func newHarness(t *testing.T, env testutils.Env, chain *testutils.FakeChain) *harness {
	h := &harness{
		out:    &bytes.Buffer{},
		err:    &bytes.Buffer{},
		chain:  chain,
		sender: &testutils.FakeSender{Chain: chain},
	}
	h.app = &cli.App{
		Out:    h.out,
		Err:    h.err,
		Lookup: env.Lookup,
		Logger: logger.Test(t),
		NewBackend: func(*config.Config, logger.Logger) cli.Backend {
			h.backends++
			require.NotNil(t, h.chain, "backend must not be created by this command")
			return &fakeBackend{FakeChain: h.chain, sender: h.sender}
		},
	}
	return h
}

func (h *harness) run(args ...string) int {
	return cli.Run(context.Background(), append(args, "--env-file", ""), h.app)
}

func expectedAddress(t *testing.T, seedPhrase string) resolver.Descriptor {
	id, err := key.DeriveIdentity(seedPhrase, 0)
	require.NoError(t, err)
	desc, err := resolver.New(wallet.V4R2, true).Address(id)
	require.NoError(t, err)
	return desc
}

func TestAddress_Offline(t *testing.T) {
	seed := testutils.NewSeedPhrase(t)
	h := newHarness(t, testutils.Env{config.EnvMnemonic: seed}, nil)

	require.Equal(t, cli.ExitOK, h.run("address"))
	require.Zero(t, h.backends)

	want := expectedAddress(t, seed)
	require.Equal(t, want.Display+"\nworkchain: 0\n", h.out.String())
	require.Empty(t, h.err.String())
}

func TestAddress_KnownWallet(t *testing.T) {
	tests := []struct {
		network string
		display string
	}{
		{"testnet", testutils.KnownTestnetAddress},
		{"mainnet", testutils.KnownMainnetAddress},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			h := newHarness(t, testutils.Env{
				config.EnvMnemonic: testutils.KnownSeedPhrase,
				config.EnvNetwork:  tt.network,
			}, nil)

			require.Equal(t, cli.ExitOK, h.run("address"))
			require.Equal(t, tt.display+"\nworkchain: 0\n", h.out.String())
		})
	}
}

func TestAddress_Deterministic(t *testing.T) {
	seed := testutils.NewSeedPhrase(t)

	var outputs []string
	for i := 0; i < 2; i++ {
		h := newHarness(t, testutils.Env{config.EnvMnemonic: seed}, nil)
		require.Equal(t, cli.ExitOK, h.run("address"))
		outputs = append(outputs, h.out.String())
	}
	require.Equal(t, outputs[0], outputs[1])
}

func TestInfo_NotDeployed(t *testing.T) {
	seed := testutils.NewSeedPhrase(t)
	chain := testutils.NewFakeChain(false)
	h := newHarness(t, testutils.Env{config.EnvMnemonic: seed}, chain)

	require.Equal(t, cli.ExitOK, h.run("info"))

	want := expectedAddress(t, seed)
	out := h.out.String()
	require.Contains(t, out, "Wallet address: "+want.Display)
	require.Contains(t, out, "Workchain: 0")
	require.Contains(t, out, "Wallet is not deployed on the testnet.")
	require.Contains(t, out, "https://t.me/testgiver_ton_bot")
	require.NotContains(t, out, "Current sequence number")

	require.Equal(t, 1, chain.CallCount("IsDeployed"))
	require.Zero(t, chain.CallCount("GetSeqno"))
	require.Zero(t, chain.CallCount("GetBalance"))
}

func TestInfo_NotDeployedMainnet(t *testing.T) {
	chain := testutils.NewFakeChain(false)
	h := newHarness(t, testutils.Env{
		config.EnvMnemonic: testutils.NewSeedPhrase(t),
		config.EnvNetwork:  "mainnet",
	}, chain)

	require.Equal(t, cli.ExitOK, h.run("info"))
	require.Contains(t, h.out.String(), "Wallet is not deployed on the mainnet.")
	require.NotContains(t, h.out.String(), "testgiver")
}

func TestInfo_Deployed(t *testing.T) {
	chain := testutils.NewFakeChain(true, 12)
	chain.Balance = tlb.MustFromTON("1.5")
	h := newHarness(t, testutils.Env{config.EnvMnemonic: testutils.NewSeedPhrase(t)}, chain)

	require.Equal(t, cli.ExitOK, h.run("info"))

	out := h.out.String()
	require.Contains(t, out, "Wallet is deployed!")
	require.Contains(t, out, "Current sequence number: 12")
	require.Contains(t, out, "Current balance: 1.5 TON")
}

func TestInfo_NetworkError(t *testing.T) {
	chain := testutils.NewFakeChain(true)
	chain.DeployedErr = fmt.Errorf("%w: connection refused", tonutils.ErrNetwork)
	h := newHarness(t, testutils.Env{config.EnvMnemonic: testutils.NewSeedPhrase(t)}, chain)

	require.Equal(t, cli.ExitNetwork, h.run("info"))
	require.Contains(t, h.err.String(), "connection refused")
}

func TestConfigurationErrors(t *testing.T) {
	seed := testutils.NewSeedPhrase(t)

	tests := []struct {
		name    string
		command string
		env     testutils.Env
		code    int
		output  string
	}{
		{"address without mnemonic", "address", testutils.Env{}, cli.ExitConfiguration, "MNEMONIC"},
		{"info without mnemonic", "info", testutils.Env{config.EnvMnemonic: ""}, cli.ExitConfiguration, "MNEMONIC"},
		{"send with empty amount", "send", testutils.Env{
			config.EnvMnemonic:         seed,
			config.EnvRecipientAddress: testutils.DestinationAddress,
			config.EnvAmount:           "",
		}, cli.ExitConfiguration, "AMOUNT"},
		{"send without recipient", "send", testutils.Env{
			config.EnvMnemonic: seed,
			config.EnvAmount:   "1",
		}, cli.ExitConfiguration, "RECIPIENT_ADDRESS"},
		{"bad optional value", "info", testutils.Env{
			config.EnvMnemonic:  seed,
			config.EnvWorkchain: "3",
		}, cli.ExitConfiguration, "WORKCHAIN"},
		{"short mnemonic", "info", testutils.Env{config.EnvMnemonic: "abandon ability able"}, cli.ExitInvalidMnemonic, "mnemonic"},
		{"malformed destination", "send", testutils.Env{
			config.EnvMnemonic:         seed,
			config.EnvRecipientAddress: "EQnotanaddress",
			config.EnvAmount:           "1",
		}, cli.ExitTransferRejected, "EQnotanaddress"},
		{"zero amount", "send", testutils.Env{
			config.EnvMnemonic:         seed,
			config.EnvRecipientAddress: testutils.DestinationAddress,
			config.EnvAmount:           "0",
		}, cli.ExitTransferRejected, "amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.env, nil)
			require.Equal(t, tt.code, h.run(tt.command))
			require.Zero(t, h.backends, "no network activity before the inputs are valid")
			require.Empty(t, h.out.String())
			require.Contains(t, h.err.String(), tt.output)
		})
	}
}

func sendEnv(t *testing.T, extra testutils.Env) testutils.Env {
	env := testutils.Env{
		config.EnvMnemonic:            testutils.NewSeedPhrase(t),
		config.EnvRecipientAddress:    testutils.DestinationAddress,
		config.EnvAmount:              "1.5",
		config.EnvConfirmPollInterval: "1ms",
	}
	for k, v := range extra {
		env[k] = v
	}
	return env
}

func TestSend(t *testing.T) {
	chain := testutils.NewFakeChain(true, 7, 7, 8)
	h := newHarness(t, sendEnv(t, nil), chain)

	require.Equal(t, cli.ExitOK, h.run("send"), h.err.String())

	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	require.Equal(t, []string{
		"seqno: 7",
		"Sending 1.5 TON to " + testutils.DestinationAddress + "...",
		"Transaction sent successfully ✓",
	}, lines)

	require.Equal(t, []uint32{7}, h.sender.Seqnos)
	require.Equal(t, []string{"IsDeployed", "GetSeqno", "Send", "GetSeqno", "GetSeqno"}, chain.Calls())
}

func TestSend_Failures(t *testing.T) {
	t.Run("not deployed", func(t *testing.T) {
		chain := testutils.NewFakeChain(false)
		h := newHarness(t, sendEnv(t, nil), chain)

		require.Equal(t, cli.ExitNotDeployed, h.run("send"))
		require.Empty(t, h.sender.Messages)
		require.Contains(t, h.err.String(), "not deployed")
	})

	t.Run("rejected", func(t *testing.T) {
		chain := testutils.NewFakeChain(true, 7)
		h := newHarness(t, sendEnv(t, nil), chain)
		h.sender.Err = errors.New("external message was not accepted")

		require.Equal(t, cli.ExitTransferRejected, h.run("send"))
		require.NotContains(t, h.out.String(), "successfully")
	})

	t.Run("timed out", func(t *testing.T) {
		chain := testutils.NewFakeChain(true, 7)
		h := newHarness(t, sendEnv(t, testutils.Env{config.EnvConfirmMaxAttempts: "3"}), chain)

		require.Equal(t, cli.ExitTimedOut, h.run("send"))
		require.Equal(t, 4, chain.CallCount("GetSeqno"))
		require.NotContains(t, h.out.String(), "successfully")
	})

	t.Run("interrupted", func(t *testing.T) {
		chain := testutils.NewFakeChain(true, 7)
		h := newHarness(t, sendEnv(t, testutils.Env{config.EnvConfirmMaxAttempts: "0"}), chain)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.Equal(t, cli.ExitInterrupted, cli.Run(ctx, []string{"send", "--env-file", ""}, h.app))
	})
}

func TestRun_UnknownCommand(t *testing.T) {
	h := newHarness(t, testutils.Env{}, nil)
	require.Equal(t, cli.ExitUnknown, h.run("deploy"))
	require.Contains(t, h.err.String(), "deploy")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{nil, cli.ExitOK},
		{errors.New("boom"), cli.ExitUnknown},
		{fmt.Errorf("load: %w", config.ErrMissingConfiguration), cli.ExitConfiguration},
		{fmt.Errorf("load: %w", config.ErrInvalidConfiguration), cli.ExitConfiguration},
		{fmt.Errorf("derive: %w", tonutils.ErrInvalidMnemonic), cli.ExitInvalidMnemonic},
		{fmt.Errorf("send: %w", tonutils.ErrContractNotDeployed), cli.ExitNotDeployed},
		{fmt.Errorf("dial: %w", tonutils.ErrNetwork), cli.ExitNetwork},
		{fmt.Errorf("send: %w", tonutils.ErrTransferRejected), cli.ExitTransferRejected},
		{fmt.Errorf("poll: %w", tonutils.ErrTimedOut), cli.ExitTimedOut},
		{fmt.Errorf("%w: %w", tonutils.ErrTransferRejected, tonutils.ErrNetwork), cli.ExitTransferRejected},
		{context.Canceled, cli.ExitInterrupted},
		{fmt.Errorf("%w: failed to get account: %w", tonutils.ErrNetwork, context.Canceled), cli.ExitInterrupted},
	}

	for _, tt := range tests {
		require.Equal(t, tt.code, cli.ExitCode(tt.err), "%v", tt.err)
	}
}
