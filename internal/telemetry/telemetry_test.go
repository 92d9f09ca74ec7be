package telemetry_test

import (
	"context"
	"testing"

	"github.com/exilekitchen/buildcraft/internal/config"
	"github.com/exilekitchen/buildcraft/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := telemetry.Init(config.TelemetryConfig{Enabled: false}, "test")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v, want nil", err)
	}
}

func TestInit_NoEndpoint(t *testing.T) {
	shutdown, err := telemetry.Init(config.TelemetryConfig{Enabled: true}, "test")
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if shutdown == nil {
		t.Fatal("Init() returned nil shutdown func")
	}
}
