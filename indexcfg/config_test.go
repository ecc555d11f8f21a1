package indexcfg

import "testing"

func TestValidateDefaultConfigOK(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateRejectsBadRPCHost(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RPCHost = "127.0.0.1"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateRejectsEmptyNetwork(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network = ""
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateRejectsBadFromHeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FromHeight = -2
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error")
	}
}
