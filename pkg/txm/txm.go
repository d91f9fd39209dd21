package txm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartcontractkit/chainlink-common/pkg/logger"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
)

// Sender signs a wallet message with the given seqno and hands it to the
// network. It does not wait for inclusion.
type Sender interface {
	Send(ctx context.Context, msg *wallet.Message, seqno uint32) error
}

// Observer is told about the progress of a transfer. Any method may be a no-op.
type Observer interface {
	SeqnoFetched(seqno uint32)
	Submitting(req TransferRequest)
	Confirmed(res PollResult)
}

type nopObserver struct{}

func (nopObserver) SeqnoFetched(uint32)        {}
func (nopObserver) Submitting(TransferRequest) {}
func (nopObserver) Confirmed(PollResult)       {}

// Txm submits a single transfer and waits for the wallet seqno to move.
type Txm struct {
	Logger logger.Logger
	Config Config
	Reader tonutils.ChainReader
	Sender Sender
}

func New(lggr logger.Logger, reader tonutils.ChainReader, sender Sender, config Config) *Txm {
	return &Txm{
		Logger: logger.Named(lggr, "Txm"),
		Config: config,
		Reader: reader,
		Sender: sender,
	}
}

// Transfer checks that the sending wallet is deployed, reads its seqno right
// before signing, submits req once and polls until the seqno changes.
func (t *Txm) Transfer(ctx context.Context, from *address.Address, req TransferRequest, obs Observer) (PollResult, error) {
	if obs == nil {
		obs = nopObserver{}
	}

	if err := tonutils.RequireDeployed(ctx, t.Reader, from); err != nil {
		return PollResult{}, err
	}

	seqno, err := t.Reader.GetSeqno(ctx, from)
	if err != nil {
		return PollResult{}, fmt.Errorf("failed to get seqno of %s: %w", from.String(), err)
	}
	obs.SeqnoFetched(seqno)

	obs.Submitting(req)
	if err = t.Submit(ctx, req, seqno); err != nil {
		return PollResult{}, err
	}

	res, err := t.WaitConfirmed(ctx, from, seqno)
	if err != nil {
		return res, err
	}
	obs.Confirmed(res)
	return res, nil
}

// Submit makes exactly one send attempt with the caller's seqno.
func (t *Txm) Submit(ctx context.Context, req TransferRequest, seqno uint32) error {
	t.Logger.Debugw("submitting transfer", "to", req.Destination.String(), "amount", req.Amount.Nano().String(), "seqno", seqno)

	if err := t.Sender.Send(ctx, req.Message(), seqno); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: failed to send transfer to %s: %w", tonutils.ErrTransferRejected, req.Destination.String(), err)
	}

	t.Logger.Infow("transfer submitted", "to", req.Destination.String(), "amount", req.Amount.Nano().String(), "seqno", seqno)
	return nil
}

// PollState is the state of the confirmation poller.
type PollState int

const (
	// Waiting: the seqno still equals the one the transfer was signed with.
	Waiting PollState = iota
	// Confirmed: the seqno moved, so the wallet accepted the transfer.
	Confirmed
	// TimedOut: MaxConfirmAttempts checks ran without the seqno moving.
	TimedOut
)

func (s PollState) String() string {
	switch s {
	case Waiting:
		return "WAITING"
	case Confirmed:
		return "CONFIRMED"
	case TimedOut:
		return "TIMED_OUT"
	default:
		return fmt.Sprintf("PollState(%d)", int(s))
	}
}

// PollResult describes where the poller stopped. Checks counts every seqno
// query, Waits only those that returned the unchanged seqno.
type PollResult struct {
	State  PollState
	Checks uint
	Waits  uint
	Seqno  uint32
}

// WaitConfirmed sleeps ConfirmPollInterval before every check and returns once
// the seqno differs from seqno. MaxConfirmAttempts bounds the number of checks
// (TimedOut); 0 keeps polling until the seqno moves or ctx is done. Failed
// checks wrapping ErrNetwork are retried up to MaxTransientErrors in a row.
func (t *Txm) WaitConfirmed(ctx context.Context, addr *address.Address, seqno uint32) (PollResult, error) {
	res := PollResult{State: Waiting, Seqno: seqno}
	var transient uint

	for {
		if t.Config.MaxConfirmAttempts > 0 && res.Checks >= t.Config.MaxConfirmAttempts {
			res.State = TimedOut
			t.Logger.Warnw("seqno did not change", "seqno", seqno, "checks", res.Checks)
			return res, fmt.Errorf("%w: seqno of %s still %d after %d checks", tonutils.ErrTimedOut, addr.String(), seqno, res.Checks)
		}

		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-time.After(t.Config.ConfirmPollInterval):
		}

		res.Checks++
		current, err := t.Reader.GetSeqno(ctx, addr)
		if err != nil {
			if !errors.Is(err, tonutils.ErrNetwork) || transient >= t.Config.MaxTransientErrors {
				return res, fmt.Errorf("failed to poll seqno of %s: %w", addr.String(), err)
			}
			transient++
			t.Logger.Warnw("seqno check failed, retrying", "check", res.Checks, "consecutiveErrors", transient, "err", err)
			continue
		}
		transient = 0

		if current != seqno {
			res.State = Confirmed
			res.Seqno = current
			t.Logger.Infow("transfer confirmed", "seqno", current, "checks", res.Checks)
			return res, nil
		}

		res.Waits++
		t.Logger.Debugw("seqno unchanged", "seqno", current, "check", res.Checks)
	}
}
