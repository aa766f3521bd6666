// Package ids generates entity identifiers.  Every entity id is a short
// textual prefix naming the entity kind followed by a unique value, e.g.
// "EVT-2f9c...".  Generation sits behind an interface so tests can use a
// deterministic sequence instead of random UUIDs.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Prefixes for each entity kind.
const (
	PrefixEvent       = "EVT"
	PrefixTicket      = "TKT"
	PrefixPayment     = "PAY"
	PrefixUser        = "USR"
	PrefixOrganizer   = "ORG"
	PrefixParticipant = "PRT"
)

// Generator produces unique identifiers for a given prefix.
type Generator interface {
	New(prefix string) string
}

type uuidGenerator struct{}

// NewUUID returns the production generator: prefix plus a random UUID.
func NewUUID() Generator { return uuidGenerator{} }

func (uuidGenerator) New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Sequence is a deterministic generator for tests: prefix plus an
// incrementing counter shared across prefixes.
type Sequence struct {
	n atomic.Uint64
}

// NewSequence returns a fresh counting generator.
func NewSequence() *Sequence { return &Sequence{} }

func (s *Sequence) New(prefix string) string {
	return fmt.Sprintf("%s-%06d", prefix, s.n.Add(1))
}
