package txm

import (
	"time"
)

type Config struct {
	ConfirmPollInterval time.Duration // Delay before each seqno check
	MaxConfirmAttempts  uint          // Seqno checks before giving up, 0 polls until the seqno moves
	MaxTransientErrors  uint          // Consecutive failed checks tolerated while polling
}

var DefaultConfigSet = Config{
	ConfirmPollInterval: 1500 * time.Millisecond,
	MaxConfirmAttempts:  120,
	MaxTransientErrors:  3,
}
