package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"

	"wellness-assistant/handler"
	"wellness-assistant/internal/assistant"
	"wellness-assistant/internal/catalog"
	"wellness-assistant/internal/conversation"
	"wellness-assistant/internal/integrations/gemini"
	"wellness-assistant/internal/integrations/openai"
	"wellness-assistant/internal/integrations/paramstore"
	"wellness-assistant/internal/repository"
	"wellness-assistant/internal/usecase"
)

func main() {
	ctx := context.Background()

	// A missing .env is normal outside local runs.
	envErr := godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))}))
	slog.SetDefault(logger)
	if envErr != nil {
		slog.Debug("no .env file loaded", "err", envErr)
	}

	// ---- Configuration (read only here) ----
	sessionTable := mustEnv("SESSION_TABLE")
	paramPrefix := mustEnv("PARAM_PREFIX")
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	minReplyLatency := envDuration("MIN_REPLY_LATENCY_MS", 750)
	serviceTimeout := envDuration("SERVICE_TIMEOUT_MS", 8000)
	maxAnswerLen := envInt("MAX_ANSWER_LENGTH", 1000)
	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	store, err := repository.New(awsdynamodb.NewFromConfig(cfg), sessionTable)
	if err != nil {
		slog.Error("failed to create session store", "err", err)
		os.Exit(1)
	}

	var llm assistant.LLMClient
	switch provider {
	case "", "openai":
		llm, err = openai.NewClient(ssmClient, paramPrefix)
	case "gemini":
		llm, err = gemini.NewClient(ssmClient, paramPrefix)
	default:
		slog.Error("unsupported LLM provider", "provider", provider)
		os.Exit(1)
	}
	if err != nil {
		slog.Error("failed to create LLM client", "provider", provider, "err", err)
		os.Exit(1)
	}

	svc, err := assistant.NewService(ssmClient, llm, paramPrefix)
	if err != nil {
		slog.Error("failed to create assistant service", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	sessions, err := usecase.NewSessionService(store, svc, svc, catalog.Default(), maxAnswerLen,
		conversation.WithPacer(conversation.NewPacer(minReplyLatency)),
		conversation.WithServiceTimeout(serviceTimeout),
		conversation.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create session service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(sessions, handler.WithAllowedOrigin(allowedOrigin), handler.WithLogger(logger))
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer environment variable, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

// envDuration reads a millisecond count.
func envDuration(key string, defMillis int) time.Duration {
	return time.Duration(envInt(key, defMillis)) * time.Millisecond
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
