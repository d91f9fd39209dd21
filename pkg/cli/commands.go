package cli

import (
	"fmt"

	"github.com/smartcontractkit/chainlink-common/pkg/logger"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/ton-wallet/pkg/config"
	tonconfig "github.com/smartcontractkit/ton-wallet/pkg/ton/config"
	"github.com/smartcontractkit/ton-wallet/pkg/ton/key"
	"github.com/smartcontractkit/ton-wallet/pkg/ton/resolver"
	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
	"github.com/smartcontractkit/ton-wallet/pkg/txm"
)

const testnetFaucet = "https://t.me/testgiver_ton_bot"

func newAddressCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address derived from MNEMONIC (offline)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load(app.Lookup, config.RequireWallet)
			if err != nil {
				return err
			}

			id, r, err := openIdentity(cfg)
			if err != nil {
				return err
			}
			defer id.Zero()

			desc, err := r.Address(id)
			if err != nil {
				return err
			}
			logger.Named(app.Logger, "Address").Debugw("derived wallet", "identity", id.String(), "version", cfg.WalletVersion)

			fmt.Fprintln(app.Out, desc.Display)
			fmt.Fprintln(app.Out, "workchain:", desc.Workchain)
			return nil
		},
	}
}

func newInfoCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print address, deployment status, seqno and balance of the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			lggr := logger.Named(app.Logger, "Info")

			cfg, err := config.Load(app.Lookup, config.RequireWallet)
			if err != nil {
				return err
			}

			id, r, err := openIdentity(cfg)
			if err != nil {
				return err
			}
			defer id.Zero()

			desc, err := r.Address(id)
			if err != nil {
				return err
			}

			backend := app.NewBackend(cfg, app.Logger)
			lggr.Debugw("querying wallet", "address", desc.Display, "network", cfg.Network, "configURL", cfg.ConfigURL)

			fmt.Fprintln(app.Out, "Wallet address:", desc.Display)
			fmt.Fprintln(app.Out, "Workchain:", desc.Workchain)

			status, err := tonutils.Inspect(ctx, backend, desc.Address)
			if err != nil {
				return err
			}

			if !status.Deployed {
				fmt.Fprintln(app.Out)
				fmt.Fprintln(app.Out, warnStyle(app.Out).Render(fmt.Sprintf("⚠️  Wallet is not deployed on the %s.", cfg.Network)))
				if cfg.Network.IsTestnet() {
					fmt.Fprintln(app.Out, "To deploy your wallet, you need to send some testnet TON to this address.")
					fmt.Fprintln(app.Out, "You can get testnet TON from a faucet like:", testnetFaucet)
					fmt.Fprintln(app.Out, "After receiving testnet TON, the wallet will be automatically deployed.")
				} else {
					fmt.Fprintln(app.Out, "To deploy your wallet, you need to send some TON to this address.")
					fmt.Fprintln(app.Out, "After receiving TON, the wallet will be automatically deployed.")
				}
				return nil
			}

			fmt.Fprintln(app.Out)
			fmt.Fprintln(app.Out, "Wallet is deployed!")
			fmt.Fprintln(app.Out, "Current sequence number:", status.Seqno)
			fmt.Fprintln(app.Out, "Current balance:", status.Balance.String(), "TON")
			return nil
		},
	}
}

func newSendCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Send AMOUNT TON to RECIPIENT_ADDRESS and wait for the wallet seqno to change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(app.Lookup, config.RequireTransfer)
			if err != nil {
				return err
			}

			req, err := txm.NewTransferRequest(cfg.RecipientAddress, cfg.Amount)
			if err != nil {
				return err
			}

			id, r, err := openIdentity(cfg)
			if err != nil {
				return err
			}
			defer id.Zero()

			desc, err := r.Address(id)
			if err != nil {
				return err
			}

			backend := app.NewBackend(cfg, app.Logger)
			sender, err := backend.Sender(ctx, r, id)
			if err != nil {
				return err
			}

			tm := txm.New(app.Logger, backend, sender, cfg.Confirm)
			_, err = tm.Transfer(ctx, desc.Address, req, &sendObserver{app: app, cfg: cfg})
			return err
		},
	}
}

// sendObserver prints transfer progress in the order the steps happen.
type sendObserver struct {
	app *App
	cfg *config.Config
}

func (o *sendObserver) SeqnoFetched(seqno uint32) {
	fmt.Fprintln(o.app.Out, "seqno:", seqno)
}

func (o *sendObserver) Submitting(txm.TransferRequest) {
	fmt.Fprintf(o.app.Out, "Sending %s TON to %s...\n", o.cfg.Amount, o.cfg.RecipientAddress)
}

func (o *sendObserver) Confirmed(txm.PollResult) {
	fmt.Fprintln(o.app.Out, successStyle(o.app.Out).Render("Transaction sent successfully ✓"))
}

func openIdentity(cfg *config.Config) (*key.Identity, resolver.Resolver, error) {
	version, err := tonconfig.WalletVersion(cfg.WalletVersion)
	if err != nil {
		return nil, resolver.Resolver{}, fmt.Errorf("%w: %w", config.ErrInvalidConfiguration, err)
	}

	id, err := key.DeriveIdentity(cfg.Mnemonic, cfg.Workchain)
	if err != nil {
		return nil, resolver.Resolver{}, err
	}
	return id, resolver.New(version, cfg.Network.IsTestnet()), nil
}
