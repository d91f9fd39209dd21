package tvm

import (
	"fmt"
)

// ExitCode is the TVM compute phase exit code of a get-method call or a
// transaction. See https://docs.ton.org/v3/documentation/tvm/tvm-exit-codes
type ExitCode int32

// IsSuccess reports whether the VM finished normally.
func (c ExitCode) IsSuccess() bool {
	return c == ExitCodeSuccess || c == ExitCodeSuccessVariant
}

const (
	/// TVM exit codes

	ExitCodeSuccess                   ExitCode = 0   // Standard successful execution exit code.
	ExitCodeSuccessVariant            ExitCode = 1   // Alternative successful execution exit code.
	ExitCodeStackUnderflow            ExitCode = 2   // Stack underflow.
	ExitCodeStackOverflow             ExitCode = 3   // Stack overflow.
	ExitCodeIntegerOverflow           ExitCode = 4   // Integer overflow.
	ExitCodeIntegerOutOfExpectedRange ExitCode = 5   // Range check error.
	ExitCodeInvalidOpcode             ExitCode = 6   // Invalid TVM opcode.
	ExitCodeTypeCheckError            ExitCode = 7   // Type check error.
	ExitCodeCellOverflow              ExitCode = 8   // Cell overflow.
	ExitCodeCellUnderflow             ExitCode = 9   // Cell underflow.
	ExitCodeDictionaryError           ExitCode = 10  // Dictionary error.
	ExitCodeUnknownError              ExitCode = 11  // Also thrown when a get-method id is not in the method dictionary.
	ExitCodeFatalError                ExitCode = 12  // Fatal error.
	ExitCodeOutOfGasError             ExitCode = 13  // Out of gas error.
	ExitCodeOutOfGasErrorVariant      ExitCode = -14 // Same as 13. Negative, so that it cannot be faked.

	/// Wallet contract exit codes (v3, v4)

	ExitCodeWalletSeqnoMismatch     ExitCode = 33 // The external message carries a stale or future seqno.
	ExitCodeWalletSubwalletMismatch ExitCode = 34 // The external message targets another subwallet id.
	ExitCodeWalletInvalidSignature  ExitCode = 35 // Signature check failed (v3: also an expired message).
	ExitCodeWalletExpired           ExitCode = 36 // valid_until is in the past (v4).
)

// Describe provides a human-readable description of the exit code.
func (c ExitCode) Describe() string {
	switch c {
	case ExitCodeSuccess, ExitCodeSuccessVariant:
		return "Success"
	case ExitCodeStackUnderflow:
		return "Stack underflow"
	case ExitCodeStackOverflow:
		return "Stack overflow"
	case ExitCodeIntegerOverflow:
		return "Integer overflow"
	case ExitCodeIntegerOutOfExpectedRange:
		return "Integer out of expected range"
	case ExitCodeInvalidOpcode:
		return "Invalid opcode"
	case ExitCodeTypeCheckError:
		return "Type check error"
	case ExitCodeCellOverflow:
		return "Cell overflow"
	case ExitCodeCellUnderflow:
		return "Cell underflow"
	case ExitCodeDictionaryError:
		return "Dictionary error"
	case ExitCodeUnknownError:
		return "Unknown error or missing get-method"
	case ExitCodeFatalError:
		return "Fatal error"
	case ExitCodeOutOfGasError, ExitCodeOutOfGasErrorVariant:
		return "Out of gas error"
	case ExitCodeWalletSeqnoMismatch:
		return "Wallet seqno mismatch"
	case ExitCodeWalletSubwalletMismatch:
		return "Wallet subwallet id mismatch"
	case ExitCodeWalletInvalidSignature:
		return "Wallet signature invalid"
	case ExitCodeWalletExpired:
		return "Wallet message expired"
	default:
		return fmt.Sprintf("Non-standard exit code: %d", c)
	}
}

func (c ExitCode) String() string {
	return fmt.Sprintf("%d (%s)", int32(c), c.Describe())
}
