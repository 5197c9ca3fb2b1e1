package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	ProviderSimulate = "simulate"
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
)

const (
	defaultOllamaModel     = "ministral-3:latest"
	defaultOllamaHost      = "http://localhost:11434"
	defaultOpenAIModel     = "gpt-3.5-turbo"
	defaultOpenAIBase      = "https://api.openai.com/v1"
	defaultMaxTokens       = 2000
	defaultTemperature     = 0.7
	defaultSimulationDelay = 1500 * time.Millisecond
	// Inputs are clipped well below the smallest supported context window.
	maxInputChars = 60_000
)

const defaultLLMHTTPTimeout = 3 * time.Minute

var (
	// ErrEmptyInput is returned when the request text is blank.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrUnknownMode is returned when a request names a mode outside the catalogue.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrUnknownProvider is returned by New for unsupported providers.
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// Config describes how to build a Client.
type Config struct {
	Provider        string
	Model           string
	Endpoint        string
	APIKey          string
	MaxTokens       int
	Temperature     float64
	SimulationDelay time.Duration
	HTTPClient      *http.Client
}

// Request is one transformation: the text plus the selected modes.
type Request struct {
	Text       string
	Processing []string
	Style      string
}

// Client transforms text according to the selected modes.
type Client interface {
	Transform(ctx context.Context, req Request) (string, error)
	Name() string
}

// New builds the Client for cfg.Provider, falling back to environment
// variables for endpoints, models and keys.
func New(cfg Config) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderSimulate:
		delay := cfg.SimulationDelay
		if delay < 0 {
			delay = defaultSimulationDelay
		}
		return &simulatedClient{delay: delay}, nil
	case ProviderOllama:
		host := firstNonEmpty(cfg.Endpoint, os.Getenv("OLLAMA_HOST"), defaultOllamaHost)
		return &ollamaClient{
			host:   strings.TrimRight(host, "/"),
			model:  firstNonEmpty(cfg.Model, os.Getenv("OLLAMA_MODEL"), defaultOllamaModel),
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	case ProviderOpenAI:
		key := firstNonEmpty(cfg.APIKey, os.Getenv("OPENAI_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("openai provider requires an API key (set OPENAI_API_KEY or llm.api_key)")
		}
		base := firstNonEmpty(cfg.Endpoint, os.Getenv("OPENAI_BASE_URL"), defaultOpenAIBase)
		maxTokens := cfg.MaxTokens
		if maxTokens <= 0 {
			maxTokens = defaultMaxTokens
		}
		temperature := cfg.Temperature
		if temperature <= 0 {
			temperature = defaultTemperature
		}
		return &openAIClient{
			apiKey:      key,
			model:       firstNonEmpty(cfg.Model, os.Getenv("OPENAI_MODEL"), defaultOpenAIModel),
			base:        strings.TrimRight(base, "/"),
			maxTokens:   maxTokens,
			temperature: temperature,
			client:      pickHTTPClient(cfg.HTTPClient),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Local models can take minutes; the caller's context bounds each request.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
