package config

import (
	"os"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Lambda != 0.8 {
		t.Errorf("expected Lambda=0.8, got %v", cfg.Lambda)
	}
	if cfg.Gamma != 1.0 {
		t.Errorf("expected Gamma=1.0, got %v", cfg.Gamma)
	}
	if cfg.Eps != 0.01 {
		t.Errorf("expected Eps=0.01, got %v", cfg.Eps)
	}
	if cfg.LearningRate != 0.001 {
		t.Errorf("expected LearningRate=0.001, got %v", cfg.LearningRate)
	}
	if cfg.HiddenWidth != 64 {
		t.Errorf("expected HiddenWidth=64, got %d", cfg.HiddenWidth)
	}
	if cfg.InitializerName != "source" {
		t.Errorf("expected InitializerName=source, got %q", cfg.InitializerName)
	}
	if cfg.Episodes != 100000 {
		t.Errorf("expected Episodes=100000, got %d", cfg.Episodes)
	}
	if !cfg.DualTrain {
		t.Error("expected DualTrain=true")
	}
	if cfg.BuildPoints != 0 || cfg.ScorePoints != 1 {
		t.Errorf("expected default scoring {0,1}, got {%d,%d}", cfg.BuildPoints, cfg.ScorePoints)
	}
	if cfg.TelemetryPort != 8080 {
		t.Errorf("expected TelemetryPort=8080, got %d", cfg.TelemetryPort)
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("expected empty PostgresDSN by default, got %q", cfg.PostgresDSN)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	os.Setenv("SARSA_LAMBDA", "0.5")
	os.Setenv("SARSA_EPS", "0.1")
	os.Setenv("HIDDEN_WIDTH", "32")
	os.Setenv("DUAL_TRAIN", "false")
	defer func() {
		os.Unsetenv("SARSA_LAMBDA")
		os.Unsetenv("SARSA_EPS")
		os.Unsetenv("HIDDEN_WIDTH")
		os.Unsetenv("DUAL_TRAIN")
	}()

	cfg := Load()

	if cfg.Lambda != 0.5 {
		t.Errorf("expected Lambda=0.5 after env override, got %v", cfg.Lambda)
	}
	if cfg.Eps != 0.1 {
		t.Errorf("expected Eps=0.1 after env override, got %v", cfg.Eps)
	}
	if cfg.HiddenWidth != 32 {
		t.Errorf("expected HiddenWidth=32 after env override, got %d", cfg.HiddenWidth)
	}
	if cfg.DualTrain {
		t.Error("expected DualTrain=false after env override")
	}
	// Non-overridden fields should remain default
	if cfg.Gamma != 1.0 {
		t.Errorf("expected Gamma=1.0 (default), got %v", cfg.Gamma)
	}
}

func TestLoadWithPostgresAndTelemetryEnvOverrides(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://user@host/db")
	os.Setenv("TELEMETRY_PORT", "9191")
	defer func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("TELEMETRY_PORT")
	}()

	cfg := Load()

	if cfg.PostgresDSN != "postgres://user@host/db" {
		t.Errorf("expected PostgresDSN to be set from DATABASE_URL, got %q", cfg.PostgresDSN)
	}
	if cfg.TelemetryPort != 9191 {
		t.Errorf("expected TelemetryPort=9191, got %d", cfg.TelemetryPort)
	}
}

func TestLoadWithInvalidEnv(t *testing.T) {
	os.Setenv("SARSA_LAMBDA", "not-a-float")
	defer os.Unsetenv("SARSA_LAMBDA")

	cfg := Load()

	// Should fall back to default when env value is invalid
	if cfg.Lambda != 0.8 {
		t.Errorf("expected Lambda=0.8 (default) with invalid env, got %v", cfg.Lambda)
	}
}
