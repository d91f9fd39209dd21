package txm

import (
	"context"
	"fmt"

	"github.com/xssnick/tonutils-go/ton/wallet"
)

var _ Sender = WalletSender{}

type seqnoPinner interface {
	SetSeqnoFetcher(fetcher func(ctx context.Context, subWallet uint32) (uint32, error))
}

// WalletSender signs with a tonutils wallet. The wallet's own seqno lookup is
// replaced so the external message carries exactly the seqno the caller read.
type WalletSender struct {
	Wallet *wallet.Wallet
}

func (s WalletSender) Send(ctx context.Context, msg *wallet.Message, seqno uint32) error {
	spec, ok := s.Wallet.GetSpec().(seqnoPinner)
	if !ok {
		return fmt.Errorf("wallet spec %T does not support a fixed seqno", s.Wallet.GetSpec())
	}
	spec.SetSeqnoFetcher(func(context.Context, uint32) (uint32, error) {
		return seqno, nil
	})

	return s.Wallet.Send(ctx, msg, false)
}
