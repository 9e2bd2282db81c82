package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taodethi/taodethi/internal/examgen"
	"github.com/taodethi/taodethi/internal/llm"
	"github.com/taodethi/taodethi/internal/logger"
	"github.com/taodethi/taodethi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "taodethi",
	Short: "AI exam builder for Vietnamese teachers",
	Long: "taodethi soạn đề kiểm tra Toán, Vật lí, Hóa học (lớp 1-12, GDPT 2018) " +
		"bằng mô hình AI, trong terminal hoặc qua dòng lệnh.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./taodethi.yaml or ~/.config/taodethi/taodethi.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides TAODETHI_DB env var)")
	pf.String("lang", "vi", "Message language: vi or en")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "console", "Log format: console or json")
	pf.String("provider", "", "LLM provider: gemini, openai, openrouter, anthropic, mock")
	pf.String("model", "", "Model name or alias for the selected provider")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// settings is the resolved configuration of one command run.
type settings struct {
	DB        string
	Lang      string
	LogLevel  string
	LogFormat string
	// EventLog records every model call, request and reply bodies
	// included, in the database for the llm commands. Off by default.
	EventLog bool
	LLM      llm.Config
	Gen      examgen.Config
}

// viperForCmd binds a command's flags, the TAODETHI_ environment and the
// optional config file to a fresh viper instance. Nested config keys map
// to flags by name: llm.provider is --provider.
func viperForCmd(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindPFlag("llm.provider", cmd.Flags().Lookup("provider"))
	_ = v.BindPFlag("llm.model", cmd.Flags().Lookup("model"))

	v.SetDefault("llm.temperature", examgen.DefaultConfig().Temperature)
	v.SetDefault("llm.max-tokens", 0)
	v.SetDefault("llm.retry-attempts", llm.DefaultConfig().Retry.MaxAttempts)
	v.SetDefault("llm.event-log", false)

	v.SetEnvPrefix("TAODETHI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if f := v.GetString("config"); f != "" {
		v.SetConfigFile(f)
	} else {
		v.SetConfigName("taodethi")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/taodethi")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	return v, nil
}

// loadSettings resolves the configuration for cmd.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	v, err := viperForCmd(cmd)
	if err != nil {
		return nil, err
	}

	llmCfg := llm.ConfigFromEnv()
	if p := v.GetString("llm.provider"); p != "" {
		llmCfg.Provider = p
	}
	llmCfg.SetModel(v.GetString("llm.model"))
	llmCfg.Timeout = v.GetDuration("llm.timeout")
	if n := v.GetInt("llm.retry-attempts"); n > 0 {
		llmCfg.Retry.MaxAttempts = n
	}

	genCfg := examgen.DefaultConfig()
	genCfg.Temperature = v.GetFloat64("llm.temperature")
	genCfg.MaxTokens = v.GetInt("llm.max-tokens")

	return &settings{
		DB:        v.GetString("db"),
		Lang:      v.GetString("lang"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
		EventLog:  v.GetBool("llm.event-log"),
		LLM:       llmCfg,
		Gen:       genCfg,
	}, nil
}

// newLogger builds the command logger. The TUI logs to a file so the alt
// screen stays clean; other commands log to stderr.
func (s *settings) newLogger(toFile bool) (*logger.Logger, error) {
	opts := logger.Options{Level: s.LogLevel, Format: s.LogFormat}
	if toFile {
		path, err := logger.DefaultPath()
		if err != nil {
			return nil, err
		}
		opts.Path = path
	}
	return logger.New(opts)
}

// openStore opens the database at --db / TAODETHI_DB, or the default XDG
// path.
func (s *settings) openStore() (*store.Store, error) {
	path := s.DB
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return nil, err
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return store.Open(path)
}
