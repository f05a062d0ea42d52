package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/airahq/aira/domain/incident"
	"github.com/airahq/aira/domain/repository"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/slack-go/slack"
)

// Handle wires the repositories and core components from configuration and
// serves the webhook surface (and the Kafka consumer when configured)
// until ctx is cancelled.
func Handle(ctx context.Context, configPath string) error {
	cfg, err := repository.NewConfigRepository(configPath)
	if err != nil {
		return err
	}

	webApi := slack.New(os.Getenv("SLACK_BOT_TOKEN"))
	authTest, err := webApi.AuthTest()
	if err != nil {
		return fmt.Errorf("SLACK_BOT_TOKEN is invalid: %w", err)
	}
	slog.Info("Bot ID", slog.String("bot_id", authTest.UserID))

	slackRepository := repository.NewSlackRepository(webApi)

	var timeline repository.TimelineRepository
	if cfg.Dynamo.TimelineTable != "" {
		dynamoRepository, err := repository.NewDynamoDBRepository(cfg.Dynamo.TimelineTable)
		if err != nil {
			return err
		}
		timeline = dynamoRepository
	} else {
		slog.Warn("dynamo.timeline_table not configured, timeline is kept in memory")
		timeline = repository.NewMemoryTimelineRepository()
	}

	aiRepository, err := repository.NewAIRepository(cfg.AI.Model)
	if err != nil {
		return err
	}
	var summarizer repository.Summarizer
	if aiRepository != nil {
		summarizer = aiRepository
	} else {
		slog.Warn("no OpenAI credentials, alerts are ingested without AI summaries")
	}

	ecsRepository, err := repository.NewECSRepository(ctx)
	if err != nil {
		return err
	}

	orchestrator := incident.NewOrchestrator(timeline, summarizer)
	dispatcher := incident.NewDispatcher(timeline, slackRepository, ecsRepository, incident.DispatcherConfig{
		DefaultService: cfg.ECS.DefaultService,
		DefaultCluster: cfg.ECS.Cluster,
		DefaultChannel: cfg.Slack.DefaultChannel,
	})

	httpHandler := NewHTTPHandler(orchestrator, dispatcher, []byte(os.Getenv("SLACK_SIGNING_SECRET")))

	if cfg.Kafka.Brokers != "" {
		consumer := NewConsumer(cfg.Kafka, orchestrator)
		defer func() {
			if err := consumer.Close(); err != nil {
				slog.Error("Failed to close kafka consumer", slog.Any("error", err))
			}
		}()
		go consumer.Run(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           cors.Default().Handler(httpHandler.Router()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Failed to shut down server", slog.Any("error", err))
		}
	}()

	slog.Info("Listening", slog.String("addr", cfg.Listen))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type HTTPHandler struct {
	orchestrator  *incident.Orchestrator
	dispatcher    *incident.Dispatcher
	signingSecret []byte
	now           func() time.Time
}

func NewHTTPHandler(orchestrator *incident.Orchestrator, dispatcher *incident.Dispatcher, signingSecret []byte) *HTTPHandler {
	return &HTTPHandler{
		orchestrator:  orchestrator,
		dispatcher:    dispatcher,
		signingSecret: signingSecret,
		now:           time.Now,
	}
}

func (h *HTTPHandler) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/alert", h.handleAlert).Methods(http.MethodPost)
	router.HandleFunc("/slack/actions", h.handleSlackActions).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return router
}
