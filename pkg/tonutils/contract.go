package tonutils

import (
	"errors"
	"fmt"

	"github.com/xssnick/tonutils-go/ton"

	"github.com/smartcontractkit/ton-wallet/pkg/ton/tvm"
)

// Uint32From extracts the first stack value of a getter result. A getter that
// ran and failed inside the VM is reported with its exit code and is not
// treated as a transport failure.
func Uint32From(res *ton.ExecutionResult, err error) (uint32, error) {
	if err != nil {
		var execErr ton.ContractExecError
		if errors.As(err, &execErr) {
			return 0, fmt.Errorf("get method exited with code %s", tvm.ExitCode(execErr.Code))
		}
		return 0, fmt.Errorf("%w: failed to run get method: %w", ErrNetwork, err)
	}

	val, err := res.Int(0)
	if err != nil {
		return 0, fmt.Errorf("failed to extract value: %w", err)
	}
	if !val.IsUint64() || val.Uint64() > 1<<32-1 {
		return 0, fmt.Errorf("value %s does not fit into uint32", val.String())
	}

	return uint32(val.Uint64()), nil
}
