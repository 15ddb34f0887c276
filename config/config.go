package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds all configurable training parameters.
type Config struct {
	// SARSA(λ) hyperparameters.
	Lambda float64 `json:"lambda"`
	Gamma  float64 `json:"gamma"`
	Eps    float64 `json:"eps"`

	LearningRate    float64 `json:"learning_rate"`
	HiddenWidth     int     `json:"hidden_width"`
	InitializerName string  `json:"initializer_name"`

	Episodes  int  `json:"episodes"`
	DualTrain bool `json:"dual_train"`

	BuildPoints int `json:"build_points"`
	ScorePoints int `json:"score_points"`

	// EvalEvery triggers a fixed-opponent evaluation match every N
	// episodes; EvalGames sets how many games each evaluation plays.
	EvalEvery int `json:"eval_every"`
	EvalGames int `json:"eval_games"`

	// PostgresDSN configures episodestore; empty disables persistence.
	PostgresDSN string `json:"postgres_dsn"`

	// TelemetryPort configures the telemetry websocket hub; 0 disables it.
	TelemetryPort int `json:"telemetry_port"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Lambda:          0.8,
		Gamma:           1.0,
		Eps:             0.01,
		LearningRate:    0.001,
		HiddenWidth:     64,
		InitializerName: "source",
		Episodes:        100000,
		DualTrain:       true,
		BuildPoints:     0,
		ScorePoints:     1,
		EvalEvery:       1000,
		EvalGames:       200,
		PostgresDSN:     "",
		TelemetryPort:   8080,
	}
}

// Load reads configuration from an optional training.json file, then
// applies environment variable overrides. Fields not set in either
// source retain their default values.
func Load() *Config {
	cfg := Defaults()

	// Try to load from training.json
	if f, err := os.Open("training.json"); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			log.Printf("Warning: failed to parse training.json: %v", err)
		}
	}

	// Environment variable overrides
	overrideFloat(&cfg.Lambda, "SARSA_LAMBDA")
	overrideFloat(&cfg.Gamma, "SARSA_GAMMA")
	overrideFloat(&cfg.Eps, "SARSA_EPS")
	overrideFloat(&cfg.LearningRate, "LEARNING_RATE")
	overrideInt(&cfg.HiddenWidth, "HIDDEN_WIDTH")
	overrideString(&cfg.InitializerName, "INITIALIZER_NAME")
	overrideInt(&cfg.Episodes, "EPISODES")
	overrideBool(&cfg.DualTrain, "DUAL_TRAIN")
	overrideInt(&cfg.BuildPoints, "BUILD_POINTS")
	overrideInt(&cfg.ScorePoints, "SCORE_POINTS")
	overrideInt(&cfg.EvalEvery, "EVAL_EVERY")
	overrideInt(&cfg.EvalGames, "EVAL_GAMES")
	overrideString(&cfg.PostgresDSN, "DATABASE_URL")
	overrideInt(&cfg.TelemetryPort, "TELEMETRY_PORT")

	return cfg
}

func overrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*field = n
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideFloat(field *float64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*field = f
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*field = b
		} else {
			log.Printf("Warning: invalid value for %s: %q", envKey, val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
