package kpro

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	config := NewConfig()
	if err := config.Validate(); err != nil {
		t.Error(err)
	}
	if config.MetricRegistry == nil {
		t.Error("expected non-nil MetricRegistry, got nil")
	}
}

func TestNetConfigValidates(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*Config)
	}{
		{"MaxOpenRequests", func(cfg *Config) { cfg.Net.MaxOpenRequests = 0 }},
		{"DialTimeout", func(cfg *Config) { cfg.Net.DialTimeout = 0 }},
		{"ReadTimeout", func(cfg *Config) { cfg.Net.ReadTimeout = 0 }},
		{"WriteTimeout", func(cfg *Config) { cfg.Net.WriteTimeout = 0 }},
		{"RequestTimeout", func(cfg *Config) { cfg.Net.RequestTimeout = 0 }},
		{"SASL.User", func(cfg *Config) {
			cfg.Net.SASL.Enable = true
			cfg.Net.SASL.Mechanism = SASLTypePlaintext
			cfg.Net.SASL.User = ""
			cfg.Net.SASL.Password = "pw"
		}},
		{"SASL.Password", func(cfg *Config) {
			cfg.Net.SASL.Enable = true
			cfg.Net.SASL.Mechanism = SASLTypePlaintext
			cfg.Net.SASL.User = "user"
			cfg.Net.SASL.Password = ""
		}},
		{"SASL.Mechanism", func(cfg *Config) {
			cfg.Net.SASL.Enable = true
			cfg.Net.SASL.Mechanism = "bogus"
			cfg.Net.SASL.User = "user"
			cfg.Net.SASL.Password = "pw"
		}},
		{"SASL.TokenProvider", func(cfg *Config) {
			cfg.Net.SASL.Enable = true
			cfg.Net.SASL.Mechanism = SASLTypeOAuth
			cfg.Net.SASL.TokenProvider = nil
		}},
		{"TLS.Config", func(cfg *Config) {
			cfg.Net.TLS.Enable = true
			cfg.Net.TLS.Config = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.cfg(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error, got nil")
			}
			var cfgErr ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected a ConfigurationError, got %T: %v", err, err)
			}
		})
	}
}

func TestSASLCredentialsFilePathSkipsUserPasswordCheck(t *testing.T) {
	cfg := NewConfig()
	cfg.Net.SASL.Enable = true
	cfg.Net.SASL.Mechanism = SASLTypeSCRAMSHA256
	cfg.Net.SASL.CredentialsFilePath = "/etc/kpro/creds"

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected no error when CredentialsFilePath is set, got %v", err)
	}
}
