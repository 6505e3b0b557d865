// Package ledger tracks accumulated activity units and their exchange into minutes.
package ledger

import (
	"errors"
	"math"
	"math/bits"
	"sync"
)

// ErrZeroRate is returned when a ledger is created with a zero exchange rate.
var ErrZeroRate = errors.New("units per minute must be greater than 0")

// Snapshot is a point-in-time copy of ledger state for display.
type Snapshot struct {
	TotalUnits        uint32
	RedeemedMinutes   uint32
	RedeemableMinutes uint32
	UnitsPerMinute    uint32
}

// Ledger converts activity units into redeemable minutes at a fixed rate.
// All methods are safe for concurrent use.
type Ledger struct {
	mu sync.Mutex

	totalUnits      uint32
	redeemedMinutes uint32
	unitsPerMinute  uint32
	redeemable      uint32
}

// Option configures a Ledger at construction.
type Option func(*Ledger)

// WithRedeemedMinutes seeds the ledger with minutes already redeemed.
func WithRedeemedMinutes(minutes uint32) Option {
	return func(l *Ledger) {
		l.redeemedMinutes = minutes
	}
}

// New creates a ledger holding totalUnits with the given exchange rate.
func New(totalUnits, unitsPerMinute uint32, opts ...Option) (*Ledger, error) {
	if unitsPerMinute == 0 {
		return nil, ErrZeroRate
	}
	l := &Ledger{
		totalUnits:     totalUnits,
		unitsPerMinute: unitsPerMinute,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.recompute()
	return l, nil
}

// Recompute refreshes and returns the number of currently redeemable minutes.
func (l *Ledger) Recompute() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.recompute()
}

// RedeemAll moves every redeemable minute into the redeemed total and returns the
// amount moved. A zero result means there was nothing to redeem and the redeemed total
// is unchanged. When the redeemed total cannot grow without overflowing, the cached
// redeemable amount reads zero until the next recompute.
func (l *Ledger) RedeemAll() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()

	amount := l.recompute()
	if amount == 0 {
		return 0
	}
	sum, carry := bits.Add32(l.redeemedMinutes, amount, 0)
	if carry != 0 {
		l.redeemable = 0
		return 0
	}
	l.redeemedMinutes = sum
	l.redeemable = 0
	return amount
}

// AddUnits accrues n activity units, saturating at the uint32 maximum.
func (l *Ledger) AddUnits(n uint32) uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()

	sum, carry := bits.Add32(l.totalUnits, n, 0)
	if carry != 0 {
		sum = math.MaxUint32
	}
	l.totalUnits = sum
	l.recompute()
	return l.totalUnits
}

// SetTotalUnits replaces the externally supplied unit total. The value may be lower
// than before; redeemable minutes then clamp to zero.
func (l *Ledger) SetTotalUnits(n uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.totalUnits = n
	l.recompute()
}

// Snapshot returns a copy of the current state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot{
		TotalUnits:        l.totalUnits,
		RedeemedMinutes:   l.redeemedMinutes,
		RedeemableMinutes: l.redeemable,
		UnitsPerMinute:    l.unitsPerMinute,
	}
}

func (l *Ledger) recompute() uint32 {
	spent := spentUnits(l.redeemedMinutes, l.unitsPerMinute)
	if l.totalUnits >= spent {
		l.redeemable = (l.totalUnits - spent) / l.unitsPerMinute
	} else {
		l.redeemable = 0
	}
	return l.redeemable
}

// spentUnits converts redeemed minutes back to units. An overflowing product counts
// as no units spent.
func spentUnits(minutes, rate uint32) uint32 {
	hi, lo := bits.Mul32(minutes, rate)
	if hi != 0 {
		return 0
	}
	return lo
}
