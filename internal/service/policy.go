package service

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"strings"
	"sync"

	"github.com/dfquintero/eventia/internal/model"
)

// ApprovalPolicy decides the outcome of simulated payment processing.  The
// default is probabilistic; tests inject a deterministic policy.
type ApprovalPolicy interface {
	Approve(p model.Payment) bool
}

// RandomPolicy approves payments with a fixed probability.  The rate comes
// from configuration, not from a literal buried in the engine.  The mutex
// guards the generator: math/rand.Rand is not safe for the concurrent
// payment-processing requests that call Approve.
type RandomPolicy struct {
	rate float64
	mu   sync.Mutex
	rnd  *mrand.Rand
}

// NewRandomPolicy builds a policy approving with the given probability,
// clamped to [0, 1].
func NewRandomPolicy(rate float64, src mrand.Source) *RandomPolicy {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return &RandomPolicy{rate: rate, rnd: mrand.New(src)}
}

func (p *RandomPolicy) Approve(model.Payment) bool {
	p.mu.Lock()
	f := p.rnd.Float64()
	p.mu.Unlock()
	return f < p.rate
}

// ApproveAll and RejectAll are fixed-outcome policies for tests and manual
// operation.
type ApproveAll struct{}

func (ApproveAll) Approve(model.Payment) bool { return true }

type RejectAll struct{}

func (RejectAll) Approve(model.Payment) bool { return false }

// newAuthCode returns a gateway-style authorization code, e.g. "AUTH-9F3A21C4".
func newAuthCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "AUTH-00000000"
	}
	return "AUTH-" + strings.ToUpper(hex.EncodeToString(b))
}
