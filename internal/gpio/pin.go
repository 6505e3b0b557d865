// Package gpio models the output pin driven by the switch screen.
package gpio

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// NotConnected marks a pin the board does not expose.
const NotConnected = -1

// ErrNotConfigured is returned when driving a pin that was never configured.
var ErrNotConfigured = errors.New("gpio pin not initialized")

// Pin is a digital output.
type Pin interface {
	Number() int
	Set(high bool) error
	Level() bool
}

// SimulatedPin stands in for a board output pin and records its level.
type SimulatedPin struct {
	mu     sync.Mutex
	number int
	high   bool
	log    *zap.Logger
}

// NewSimulatedPin configures pin number as an output driven LOW.
func NewSimulatedPin(number int, log *zap.Logger) *SimulatedPin {
	if log == nil {
		log = zap.NewNop()
	}
	p := &SimulatedPin{number: number, log: log}
	if number == NotConnected {
		log.Error("board description has no control pin available")
		return p
	}
	log.Info("gpio pin initialized", zap.Int("pin", number), zap.String("state", "LOW"))
	return p
}

// Number returns the configured pin number, or NotConnected.
func (p *SimulatedPin) Number() int {
	return p.number
}

// Set drives the pin HIGH or LOW.
func (p *SimulatedPin) Set(high bool) error {
	if p.number == NotConnected {
		p.log.Error("gpio pin not initialized")
		return ErrNotConfigured
	}
	p.mu.Lock()
	p.high = high
	p.mu.Unlock()
	p.log.Info("gpio pin set", zap.Int("pin", p.number), zap.String("state", levelName(high)))
	return nil
}

// Level reports whether the pin is HIGH.
func (p *SimulatedPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

func levelName(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}
