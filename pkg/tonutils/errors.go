package tonutils

import "errors"

// Error kinds shared by every layer. Callers wrap them with fmt.Errorf("...: %w")
// and the command layer maps them to exit codes with errors.Is.
var (
	ErrInvalidMnemonic     = errors.New("invalid mnemonic")
	ErrContractNotDeployed = errors.New("contract is not deployed")
	ErrNetwork             = errors.New("network error")
	ErrTransferRejected    = errors.New("transfer rejected")
	ErrTimedOut            = errors.New("timed out waiting for confirmation")
)
