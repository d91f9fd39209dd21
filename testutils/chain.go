package testutils

import (
	"context"
	"sync"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton/wallet"

	"github.com/smartcontractkit/ton-wallet/pkg/tonutils"
)

var _ tonutils.ChainReader = (*FakeChain)(nil)

// SeqnoResponse is one scripted answer of FakeChain.GetSeqno.
type SeqnoResponse struct {
	Seqno uint32
	Err   error
}

// FakeChain is a scripted ChainReader. Seqno answers are consumed in order and
// the last one repeats forever. Every call is appended to the call log so tests
// can assert ordering across the reader and a FakeSender sharing it.
type FakeChain struct {
	mu sync.Mutex

	Deployed    bool
	DeployedErr error
	Balance     tlb.Coins
	BalanceErr  error
	Seqnos      []SeqnoResponse

	calls []string
}

func NewFakeChain(deployed bool, seqnos ...uint32) *FakeChain {
	f := &FakeChain{Deployed: deployed, Balance: tlb.MustFromTON("0")}
	for _, s := range seqnos {
		f.Seqnos = append(f.Seqnos, SeqnoResponse{Seqno: s})
	}
	return f
}

func (f *FakeChain) IsDeployed(_ context.Context, _ *address.Address) (bool, error) {
	f.record("IsDeployed")
	return f.Deployed, f.DeployedErr
}

func (f *FakeChain) GetSeqno(_ context.Context, _ *address.Address) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "GetSeqno")

	if len(f.Seqnos) == 0 {
		return 0, nil
	}
	next := f.Seqnos[0]
	if len(f.Seqnos) > 1 {
		f.Seqnos = f.Seqnos[1:]
	}
	return next.Seqno, next.Err
}

func (f *FakeChain) GetBalance(_ context.Context, _ *address.Address) (tlb.Coins, error) {
	f.record("GetBalance")
	return f.Balance, f.BalanceErr
}

// Calls returns a copy of the call log.
func (f *FakeChain) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times the named method was invoked.
func (f *FakeChain) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *FakeChain) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

// FakeSender records submitted messages instead of signing them. It logs into
// the chain's call log when Chain is set.
type FakeSender struct {
	Chain *FakeChain
	Err   error

	mu       sync.Mutex
	Seqnos   []uint32
	Messages []*wallet.Message
}

func (s *FakeSender) Send(_ context.Context, msg *wallet.Message, seqno uint32) error {
	if s.Chain != nil {
		s.Chain.record("Send")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Seqnos = append(s.Seqnos, seqno)
	s.Messages = append(s.Messages, msg)
	return s.Err
}
