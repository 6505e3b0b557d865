// Package model defines shared data structures.
package model

// ExchangeConfig defines step exchange settings.
type ExchangeConfig struct {
	Steps          int
	StepsPerMinute int
	Walk           int
}

// SwitchConfig defines output pin switch settings.
type SwitchConfig struct {
	Pin int
}

// LogConfig defines log file settings.
type LogConfig struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}
