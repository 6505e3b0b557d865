package ledger

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsZeroRate(t *testing.T) {
	l, err := New(5000, 0)
	require.ErrorIs(t, err, ErrZeroRate)
	assert.Nil(t, l)
}

func TestRecomputeFloorDivision(t *testing.T) {
	tests := []struct {
		name  string
		total uint32
		rate  uint32
		want  uint32
	}{
		{name: "exact", total: 5000, rate: 1000, want: 5},
		{name: "floor", total: 5999, rate: 1000, want: 5},
		{name: "below one minute", total: 999, rate: 1000, want: 0},
		{name: "zero total", total: 0, rate: 1000, want: 0},
		{name: "rate one", total: 42, rate: 1, want: 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.total, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Recompute())
		})
	}
}

func TestRedeemAllZeroesRedeemable(t *testing.T) {
	l, err := New(5000, 1000)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), l.RedeemAll())
	assert.Equal(t, uint32(0), l.Recompute())

	snap := l.Snapshot()
	assert.Equal(t, uint32(5), snap.RedeemedMinutes)
	assert.Equal(t, uint32(0), snap.RedeemableMinutes)
	assert.Equal(t, uint32(5000), snap.TotalUnits)
}

func TestRedeemAllTwiceReturnsZero(t *testing.T) {
	l, err := New(5999, 1000)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), l.RedeemAll())
	assert.Equal(t, uint32(0), l.RedeemAll())
	assert.Equal(t, uint32(5), l.Snapshot().RedeemedMinutes)
}

func TestRedeemAllNothingToRedeem(t *testing.T) {
	l, err := New(500, 1000)
	require.NoError(t, err)

	before := l.Snapshot()
	assert.Equal(t, uint32(0), l.Recompute())
	assert.Equal(t, uint32(0), l.RedeemAll())
	assert.Equal(t, before, l.Snapshot())
}

func TestRemainderCarriesIntoNextRedemption(t *testing.T) {
	l, err := New(5999, 1000)
	require.NoError(t, err)
	require.Equal(t, uint32(5), l.RedeemAll())

	l.AddUnits(1)
	assert.Equal(t, uint32(1), l.Recompute())
	assert.Equal(t, uint32(1), l.RedeemAll())
	assert.Equal(t, uint32(6), l.Snapshot().RedeemedMinutes)
}

func TestUnderflowGuardClampsToZero(t *testing.T) {
	l, err := New(5000, 1000, WithRedeemedMinutes(5))
	require.NoError(t, err)

	l.SetTotalUnits(3000)
	assert.Equal(t, uint32(0), l.Recompute())
	assert.Equal(t, uint32(0), l.RedeemAll())
	assert.Equal(t, uint32(5), l.Snapshot().RedeemedMinutes)
}

func TestOverflowingSpentCountsAsNothingSpent(t *testing.T) {
	l, err := New(5000, 1000, WithRedeemedMinutes(math.MaxUint32/100))
	require.NoError(t, err)

	assert.Equal(t, uint32(5), l.Recompute())
}

func TestRedeemAllRefusesOverflowingRedeemedTotal(t *testing.T) {
	l, err := New(5000, 1000, WithRedeemedMinutes(math.MaxUint32-1))
	require.NoError(t, err)
	require.Equal(t, uint32(5), l.Recompute())

	assert.Equal(t, uint32(0), l.RedeemAll())
	snap := l.Snapshot()
	assert.Equal(t, uint32(math.MaxUint32-1), snap.RedeemedMinutes)
	assert.Equal(t, uint32(0), snap.RedeemableMinutes)
}

func TestAddUnitsSaturates(t *testing.T) {
	l, err := New(math.MaxUint32-10, 1000)
	require.NoError(t, err)

	assert.Equal(t, uint32(math.MaxUint32), l.AddUnits(100))
	assert.Equal(t, uint32(math.MaxUint32/1000), l.Recompute())
}

func TestSpentNeverExceedsTotal(t *testing.T) {
	l, err := New(0, 1000)
	require.NoError(t, err)

	steps := []uint32{250, 999, 1, 1000, 4321, 0, 77, 12000}
	for i, n := range steps {
		l.AddUnits(n)
		if i%2 == 0 {
			l.RedeemAll()
		} else {
			l.Recompute()
		}
		snap := l.Snapshot()
		assert.LessOrEqual(t, uint64(snap.RedeemedMinutes)*uint64(snap.UnitsPerMinute), uint64(snap.TotalUnits), "step %d", i)
	}
}

func TestConcurrentRedeemsNeverDoubleSpend(t *testing.T) {
	l, err := New(100000, 1000)
	require.NoError(t, err)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total uint32
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := l.RedeemAll()
			mu.Lock()
			total += got
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint32(100), total)
	assert.Equal(t, uint32(100), l.Snapshot().RedeemedMinutes)
}
