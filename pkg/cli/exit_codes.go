package cli

import (
	"context"
	"errors"

	"github.com/smartcontractkit/ton-wallet/pkg/config"
	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
)

// Process exit codes, one per error kind.
const (
	ExitOK               = 0
	ExitUnknown          = 1
	ExitConfiguration    = 2
	ExitInvalidMnemonic  = 3
	ExitNotDeployed      = 4
	ExitNetwork          = 5
	ExitTransferRejected = 6
	ExitTimedOut         = 7
	ExitInterrupted      = 130
)

var exitCodes = []struct {
	err  error
	code int
}{
	{config.ErrMissingConfiguration, ExitConfiguration},
	{config.ErrInvalidConfiguration, ExitConfiguration},
	{tonutils.ErrInvalidMnemonic, ExitInvalidMnemonic},
	{tonutils.ErrContractNotDeployed, ExitNotDeployed},
	{tonutils.ErrTransferRejected, ExitTransferRejected},
	{tonutils.ErrTimedOut, ExitTimedOut},
	// a liteserver call cut short by SIGINT wraps both
	{context.Canceled, ExitInterrupted},
	{tonutils.ErrNetwork, ExitNetwork},
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ExitUnknown
}
