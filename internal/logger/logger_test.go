package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "stepai.log")

	log, err := New(Config{Level: "debug", Filename: path, MaxSize: 1})
	require.NoError(t, err)

	log.Info("exchange started")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "exchange started"))
	assert.True(t, strings.Contains(string(data), `"level":"INFO"`))
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", Filename: filepath.Join(t.TempDir(), "x.log")})
	assert.Error(t, err)
}

func TestNewEmptyPath(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewRejectsNegativeRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stepai.log")
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "max size", cfg: Config{Filename: path, MaxSize: -1}, wantErr: "max-size"},
		{name: "max backups", cfg: Config{Filename: path, MaxBackups: -1}, wantErr: "max-backups"},
		{name: "max age", cfg: Config{Filename: path, MaxAge: -1}, wantErr: "max-age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			assert.Nil(t, log)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
