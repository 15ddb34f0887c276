// Command train runs SARSA(λ) self-play training for German Whist,
// optionally persisting episode summaries to Postgres and streaming
// them to a telemetry websocket for live monitoring.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"germanwhist/config"
	"germanwhist/episodestore"
	"germanwhist/loghandler"
	"germanwhist/neuralnet"
	"germanwhist/observer"
	"germanwhist/players"
	"germanwhist/sarsa"
	"germanwhist/telemetry"
	"germanwhist/whist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	runID := uuid.NewString()
	logger := slog.New(loghandler.NewCompactHandler(os.Stdout, slog.LevelInfo, 4)).With("run", runID)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	model, err := buildModel(cfg, rng)
	if err != nil {
		logger.Error("failed to build model", "error", err)
		os.Exit(1)
	}

	trainer, err := sarsa.New(whist.ScoringRules{BuildPoints: cfg.BuildPoints, ScorePoints: cfg.ScorePoints}, model,
		sarsa.Parameters{Lambda: cfg.Lambda, Gamma: cfg.Gamma, Eps: cfg.Eps})
	if err != nil {
		logger.Error("failed to build trainer", "error", err)
		os.Exit(1)
	}

	store, err := episodestore.NewStore(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("failed to open episode store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	hub := startTelemetry(ctx, cfg, logger)

	opponent, _ := players.New("heuristic")

	sequence := 0
	onEpisode := func(summary sarsa.EpisodeSummary) {
		sequence++
		if err := store.InsertEpisode(ctx, episodestore.EpisodeRecord{
			RunID:    runID,
			Sequence: sequence,
			Winner:   summary.Winner,
			Score0:   summary.Score[0],
			Score1:   summary.Score[1],
			Steps:    summary.Steps,
			Epsilon:  summary.Epsilon,
		}); err != nil {
			logger.Warn("failed to persist episode", "error", err)
		}
		if hub != nil {
			hub.Publish(telemetry.Summary{
				Sequence: sequence,
				Winner:   summary.Winner,
				Score0:   summary.Score[0],
				Score1:   summary.Score[1],
				Steps:    summary.Steps,
				Epsilon:  summary.Epsilon,
			})
		}
	}

	logger.Info("training started", "episodes", cfg.Episodes, "dual_train", cfg.DualTrain)

	for ep := 1; ep <= cfg.Episodes; ep++ {
		select {
		case <-ctx.Done():
			logger.Info("training interrupted", "completed_episodes", ep-1)
			return
		default:
		}

		if _, err := trainer.TrainOnEpisode(rng, cfg.DualTrain, onEpisode); err != nil {
			logger.Error("episode failed", "episode", ep, "error", err)
			os.Exit(1)
		}

		if cfg.EvalEvery > 0 && ep%cfg.EvalEvery == 0 && opponent != nil {
			winRate := evaluate(trainer, opponent, rng, cfg.EvalGames)
			logger.Info("evaluation", "episode", ep, "opponent", "heuristic", "win_rate", winRate)
		}
	}

	logger.Info("training finished", "episodes", cfg.Episodes)
}

func buildModel(cfg *config.Config, rng *rand.Rand) (*neuralnet.NeuralNet, error) {
	descs := []neuralnet.LayerDesc{
		{NumInputs: observer.StateActionVectorLength, NumOutputs: cfg.HiddenWidth, Activation: neuralnet.SymmetricSigmoid},
		{NumInputs: cfg.HiddenWidth, NumOutputs: 1, Activation: neuralnet.Sigmoid},
	}
	return neuralnet.New(descs, cfg.LearningRate, cfg.InitializerName, rng)
}

func startTelemetry(ctx context.Context, cfg *config.Config, logger *slog.Logger) *telemetry.Hub {
	if cfg.TelemetryPort == 0 {
		return nil
	}

	hub := telemetry.NewHub(logger)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.TelemetryPort), Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("telemetry server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	return hub
}

// evaluate plays numGames fixed-opponent games, alternating which seat
// the trained model occupies, and returns the model's win rate.
func evaluate(trainer *sarsa.Trainer, opponent players.Player, rng *rand.Rand, numGames int) float64 {
	if numGames <= 0 {
		return 0
	}

	wins := 0
	for g := 0; g < numGames; g++ {
		modelSeat := g % 2
		winner, err := trainer.EvaluateEpisode(rng, modelSeat, opponent)
		if err != nil {
			continue
		}
		if winner == modelSeat {
			wins++
		}
	}

	return float64(wins) / float64(numGames)
}
