package txm

import (
	"fmt"
	"strings"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
)

// TransferRequest is a plain coin transfer. It is built fresh for every send
// and never retried.
type TransferRequest struct {
	Destination *address.Address // destination wallet
	Amount      tlb.Coins        // amount in nanotons
	Body        *cell.Cell       // empty payload
	Bounce      bool             // always false, the destination may be uninitialised
}

// NewTransferRequest validates the destination and amount locally so a typo
// fails before anything is signed or sent.
func NewTransferRequest(destination, amount string) (TransferRequest, error) {
	dst, err := ParseDestination(destination)
	if err != nil {
		return TransferRequest{}, err
	}

	coins, err := tlb.FromTON(strings.TrimSpace(amount))
	if err != nil {
		return TransferRequest{}, fmt.Errorf("%w: invalid amount %q: %w", tonutils.ErrTransferRejected, amount, err)
	}
	if coins.Nano().Sign() <= 0 {
		return TransferRequest{}, fmt.Errorf("%w: amount must be positive, got %q", tonutils.ErrTransferRejected, amount)
	}

	return TransferRequest{
		Destination: dst,
		Amount:      coins,
		Body:        cell.BeginCell().EndCell(),
		Bounce:      false,
	}, nil
}

// ParseDestination accepts both user-friendly (base64) and raw (wc:hex)
// address forms.
func ParseDestination(s string) (*address.Address, error) {
	s = strings.TrimSpace(s)

	var (
		addr *address.Address
		err  error
	)
	if strings.Contains(s, ":") {
		addr, err = address.ParseRawAddr(s)
	} else {
		addr, err = address.ParseAddr(s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid destination address %q: %w", tonutils.ErrTransferRejected, s, err)
	}
	return addr, nil
}

// Message builds the wallet message: non-bounceable, instant hypercube
// routing disabled, fees left at zero and paid separately from the amount.
func (r TransferRequest) Message() *wallet.Message {
	return &wallet.Message{
		Mode: wallet.PayGasSeparately,
		InternalMessage: &tlb.InternalMessage{
			IHRDisabled: true,
			Bounce:      r.Bounce,
			DstAddr:     r.Destination,
			Amount:      r.Amount,
			Body:        r.Body,
		},
	}
}
