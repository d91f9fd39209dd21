package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/smartcontractkit/chainlink-common/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartcontractkit/ton-wallet/pkg/config"
)

const (
	successColor = lipgloss.Color("2")
	errorColor   = lipgloss.Color("9")
	warnColor    = lipgloss.Color("3")
)

func successStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(successColor)
}

func warnStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(warnColor)
}

func errorStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(errorColor).Bold(true)
}

// NewRootCommand builds the ton-wallet command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	app = app.withDefaults()

	var (
		envFile  string
		logLevel string
	)

	root := &cobra.Command{
		Use:   "ton-wallet",
		Short: "Derive, inspect and fund a TON wallet from a mnemonic",
		Long: `Derive, inspect and fund a TON wallet from a mnemonic.

Configuration is read from the environment and from a .env file:
  MNEMONIC            space separated 24 word mnemonic (all commands)
  RECIPIENT_ADDRESS   destination of send
  AMOUNT              amount in TON sent by send, e.g. 0.05

Optional: TON_NETWORK (testnet|mainnet), TON_CONFIG_URL, WALLET_VERSION (v4r2|v3r2),
WORKCHAIN (0|-1), CONFIRM_POLL_INTERVAL, CONFIRM_MAX_ATTEMPTS (0 waits forever),
CONFIRM_MAX_TRANSIENT_ERRORS.`,
		Example: `  ton-wallet address
  ton-wallet info
  ton-wallet send --env-file ./testnet.env`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			if app.Logger == nil {
				lggr, err := newLogger(logLevel)
				if err != nil {
					return err
				}
				app.Logger = lggr
			}
			return nil
		},
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load, ignored when missing")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr (debug, info, warn, error)")

	root.AddCommand(
		newAddressCommand(app),
		newInfoCommand(app),
		newSendCommand(app),
	)
	return root
}

func newLogger(level string) (logger.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: --log-level: %w", config.ErrInvalidConfiguration, err)
	}
	return logger.NewWith(func(cfg *zap.Config) {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	})
}

// Run executes the command line args and returns the process exit code. The
// error, if any, is printed once to app.Err.
func Run(ctx context.Context, args []string, app *App) int {
	app = app.withDefaults()

	root := NewRootCommand(app)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(app.Err, errorStyle(app.Err).Render("Error: "+err.Error()))
	}
	return ExitCode(err)
}
