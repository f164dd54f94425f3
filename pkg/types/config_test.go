package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty db path returns ErrDBPathEmpty",
			config:  Config{DBPath: "", CanonDir: "/srv/canon"},
			wantErr: ErrDBPathEmpty,
		},
		{
			name:   "valid config",
			config: Config{DBPath: "/tmp/memoir.db", CanonDir: "/srv/canon"},
		},
		{
			name:   "canon dir is optional",
			config: Config{DBPath: "/tmp/memoir.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
