package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/smartcontractkit/chainlink-common/pkg/config"

	"github.com/smartcontractkit/ton-wallet/pkg/client"
	tonconfig "github.com/smartcontractkit/ton-wallet/pkg/ton/config"
	"github.com/smartcontractkit/ton-wallet/pkg/txm"
)

// Environment variables read by Load.
const (
	EnvMnemonic                  = "MNEMONIC"
	EnvRecipientAddress          = "RECIPIENT_ADDRESS"
	EnvAmount                    = "AMOUNT"
	EnvNetwork                   = "TON_NETWORK"
	EnvConfigURL                 = "TON_CONFIG_URL"
	EnvWalletVersion             = "WALLET_VERSION"
	EnvWorkchain                 = "WORKCHAIN"
	EnvConfirmPollInterval       = "CONFIRM_POLL_INTERVAL"
	EnvConfirmMaxAttempts        = "CONFIRM_MAX_ATTEMPTS"
	EnvConfirmMaxTransientErrors = "CONFIRM_MAX_TRANSIENT_ERRORS"
)

var (
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Requirement selects which keys must be present.
type Requirement int

const (
	RequireWallet   Requirement = iota // MNEMONIC
	RequireTransfer                    // MNEMONIC, RECIPIENT_ADDRESS, AMOUNT
)

func (r Requirement) keys() []string {
	if r == RequireTransfer {
		return []string{EnvMnemonic, EnvRecipientAddress, EnvAmount}
	}
	return []string{EnvMnemonic}
}

var DefaultConfigSet = Config{
	Network:       client.Testnet,
	WalletVersion: tonconfig.DefaultWalletVersion,
	Workchain:     0,
	Confirm:       txm.DefaultConfigSet,
}

// Config is built once per invocation and handed to every component.
type Config struct {
	Mnemonic         string
	RecipientAddress string
	Amount           string

	Network       client.Network
	ConfigURL     string
	WalletVersion string
	Workchain     int8
	Confirm       txm.Config
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is fine.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: failed to load %s: %w", ErrInvalidConfiguration, path, err)
	}
	return nil
}

// Load reads the configuration for req. All missing keys are reported
// together; nothing else is validated until every required key is present.
func Load(lookup LookupFunc, req Requirement) (*Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	values := map[string]string{}
	var missing []string
	var errs error
	for _, key := range req.keys() {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		switch {
		case !ok:
			errs = errors.Join(errs, config.ErrMissing{Name: key, Msg: "must be set in the environment or the .env file"})
		case v == "":
			errs = errors.Join(errs, config.ErrEmpty{Name: key, Msg: "must not be empty"})
		default:
			values[key] = v
			continue
		}
		missing = append(missing, key)
	}
	if errs != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMissingConfiguration, strings.Join(missing, ", "), errs)
	}

	cfg := DefaultConfigSet
	cfg.Mnemonic = values[EnvMnemonic]
	cfg.RecipientAddress = values[EnvRecipientAddress]
	cfg.Amount = values[EnvAmount]

	if err := cfg.applyOptional(lookup); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return &cfg, nil
}

func (c *Config) applyOptional(lookup LookupFunc) (err error) {
	optional := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := optional(EnvNetwork); ok {
		n, perr := client.ParseNetwork(v)
		if perr != nil {
			err = errors.Join(err, config.ErrInvalid{Name: EnvNetwork, Value: v, Msg: perr.Error()})
		} else {
			c.Network = n
		}
	}

	if v, ok := optional(EnvConfigURL); ok {
		c.ConfigURL = v
	} else if url, rerr := client.ResolveEndpoint(c.Network); rerr == nil {
		c.ConfigURL = url
	}

	if v, ok := optional(EnvWalletVersion); ok {
		if _, verr := tonconfig.WalletVersion(v); verr != nil {
			err = errors.Join(err, config.ErrInvalid{Name: EnvWalletVersion, Value: v, Msg: verr.Error()})
		} else {
			c.WalletVersion = strings.ToLower(v)
		}
	}

	if v, ok := optional(EnvWorkchain); ok {
		wc, perr := strconv.ParseInt(v, 10, 8)
		if perr != nil || !slices.Contains([]int64{0, -1}, wc) {
			err = errors.Join(err, config.ErrInvalid{Name: EnvWorkchain, Value: v, Msg: "must be 0 (basechain) or -1 (masterchain)"})
		} else {
			c.Workchain = int8(wc)
		}
	}

	if v, ok := optional(EnvConfirmPollInterval); ok {
		d, perr := time.ParseDuration(v)
		if perr != nil || d <= 0 {
			err = errors.Join(err, config.ErrInvalid{Name: EnvConfirmPollInterval, Value: v, Msg: "must be a positive duration such as 1.5s"})
		} else {
			c.Confirm.ConfirmPollInterval = d
		}
	}

	if v, ok := optional(EnvConfirmMaxAttempts); ok {
		n, perr := strconv.ParseUint(v, 10, 32)
		if perr != nil {
			err = errors.Join(err, config.ErrInvalid{Name: EnvConfirmMaxAttempts, Value: v, Msg: "must be a non-negative integer, 0 polls forever"})
		} else {
			c.Confirm.MaxConfirmAttempts = uint(n)
		}
	}

	if v, ok := optional(EnvConfirmMaxTransientErrors); ok {
		n, perr := strconv.ParseUint(v, 10, 32)
		if perr != nil {
			err = errors.Join(err, config.ErrInvalid{Name: EnvConfirmMaxTransientErrors, Value: v, Msg: "must be a non-negative integer"})
		} else {
			c.Confirm.MaxTransientErrors = uint(n)
		}
	}

	return err
}
