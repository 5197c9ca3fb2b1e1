// Package config loads TextCraft settings from defaults, an optional
// .textcraft.yaml file, TEXTCRAFT_* environment variables and CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/csheth/textcraft/internal/llm"
	"github.com/csheth/textcraft/internal/subtitle"
)

const (
	configName    = ".textcraft"
	envPrefix     = "TEXTCRAFT"
	configPathEnv = "TEXTCRAFT_CONFIG_PATH"
)

// DefaultSubtitle is typed out under the title.
const DefaultSubtitle = "Refine, restyle and summarize your text."

var (
	// ErrInvalidTiming is returned when a configured delay is negative.
	ErrInvalidTiming = errors.New("invalid timing")
	// ErrUnknownProvider is returned when llm.provider is not supported.
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// Typing controls the subtitle reveal.
type Typing struct {
	Speed        time.Duration
	PauseAfter   time.Duration
	InitialDelay time.Duration
}

// Config is the resolved application configuration.
type Config struct {
	Typing            Typing
	AnimationDuration time.Duration
	ScrollCheckDelay  time.Duration
	SubtitleText      string
	CopyFeedback      time.Duration
	LLM               llm.Config
	LogFile           string
	File              string
	// ConfigFile is the file that was read, empty when none was found.
	ConfigFile string
}

// SubtitleConfig maps the typing and animation settings onto the subtitle
// controller.
func (c Config) SubtitleConfig() subtitle.Config {
	return subtitle.Config{
		Text: c.SubtitleText,
		Timing: subtitle.Timing{
			Delay:           c.Typing.InitialDelay,
			CharInterval:    c.Typing.Speed,
			CompletionPause: c.Typing.PauseAfter,
		},
		AnimationDuration: c.AnimationDuration,
		ScrollCheckDelay:  c.ScrollCheckDelay,
	}
}

// New returns a viper instance carrying every default.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("typing.speed", 60*time.Millisecond)
	v.SetDefault("typing.pause_after", 500*time.Millisecond)
	v.SetDefault("typing.initial_delay", 400*time.Millisecond)
	v.SetDefault("animation.duration", 300*time.Millisecond)
	v.SetDefault("subtitle.scroll_check_delay", 100*time.Millisecond)
	v.SetDefault("subtitle.text", DefaultSubtitle)
	v.SetDefault("ui.copy_feedback", 2*time.Second)
	v.SetDefault("llm.provider", llm.ProviderSimulate)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.simulation_delay", 1500*time.Millisecond)
	v.SetDefault("llm.max_tokens", 2000)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("log_file", "")
	v.SetDefault("file", "")
	return v
}

// Load reads the optional config file into v and resolves the Config. A
// missing file is not an error.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName(configName) // .yaml is implicit
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(configPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return Resolve(v)
}

// Resolve converts the values held by v into a validated Config.
func Resolve(v *viper.Viper) (Config, error) {
	logFile := v.GetString("log_file")
	if logFile != "" {
		expanded, err := homedir.Expand(logFile)
		if err != nil {
			return Config{}, fmt.Errorf("expand log_file: %w", err)
		}
		logFile = expanded
	}
	file := v.GetString("file")
	if file != "" {
		expanded, err := homedir.Expand(file)
		if err != nil {
			return Config{}, fmt.Errorf("expand file: %w", err)
		}
		file = expanded
	}

	cfg := Config{
		Typing: Typing{
			Speed:        v.GetDuration("typing.speed"),
			PauseAfter:   v.GetDuration("typing.pause_after"),
			InitialDelay: v.GetDuration("typing.initial_delay"),
		},
		AnimationDuration: v.GetDuration("animation.duration"),
		ScrollCheckDelay:  v.GetDuration("subtitle.scroll_check_delay"),
		SubtitleText:      v.GetString("subtitle.text"),
		CopyFeedback:      v.GetDuration("ui.copy_feedback"),
		LLM: llm.Config{
			Provider:        strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
			Model:           v.GetString("llm.model"),
			Endpoint:        v.GetString("llm.endpoint"),
			APIKey:          v.GetString("llm.api_key"),
			MaxTokens:       v.GetInt("llm.max_tokens"),
			Temperature:     v.GetFloat64("llm.temperature"),
			SimulationDelay: v.GetDuration("llm.simulation_delay"),
		},
		LogFile:    logFile,
		File:       file,
		ConfigFile: v.ConfigFileUsed(),
	}
	return cfg, cfg.Validate()
}

// Validate rejects negative delays and unknown providers.
func (c Config) Validate() error {
	timings := map[string]time.Duration{
		"typing.speed":                c.Typing.Speed,
		"typing.pause_after":          c.Typing.PauseAfter,
		"typing.initial_delay":        c.Typing.InitialDelay,
		"animation.duration":          c.AnimationDuration,
		"subtitle.scroll_check_delay": c.ScrollCheckDelay,
		"ui.copy_feedback":            c.CopyFeedback,
		"llm.simulation_delay":        c.LLM.SimulationDelay,
	}
	for key, value := range timings {
		if value < 0 {
			return fmt.Errorf("%w: %s must not be negative (got %s)", ErrInvalidTiming, key, value)
		}
	}
	switch c.LLM.Provider {
	case "", llm.ProviderSimulate, llm.ProviderOllama, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.LLM.Provider)
	}
	return nil
}
