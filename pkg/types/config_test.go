package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/labrec"},
		},
		{
			name:   "empty data dir is allowed",
			config: Config{Backend: BackendSQLite},
		},
		{
			name:    "empty backend",
			config:  Config{DataDir: "/tmp/labrec"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  Config{Backend: "postgres"},
			wantErr: ErrBackendUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
