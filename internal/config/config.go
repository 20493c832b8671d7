package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/disclosure-trim/internal/cascade"
	"github.com/a3tai/disclosure-trim/internal/engine"
	"github.com/a3tai/disclosure-trim/internal/pipeline"
	"github.com/a3tai/disclosure-trim/internal/policy"
	"github.com/a3tai/disclosure-trim/internal/service"
	"github.com/a3tai/disclosure-trim/internal/textnorm"
)

const (
	// Mode constants
	ModeBatch  = "batch"
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort          = 8080
	DefaultHost          = "127.0.0.1"
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 100 * 1024 * 1024 // 100MB
	DefaultHeaderMaxLine = 100
	DefaultKeywordMin    = 3

	// EnvPrefix prefixes every environment variable, as in DISCLOSURE_INPUT_DIR
	EnvPrefix = "DISCLOSURE"
)

// ErrVersionRequested is returned by Load when --version is given
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for disclosure-trim
type Config struct {
	// Run configuration
	Mode        string // "batch", "stdio" or "server"
	Task        string
	InputDir    string
	OutputDir   string
	TextDir     string
	SummaryFile string
	Recursive   bool
	Workers     int

	// Server configuration
	Host string
	Port int

	// Marker configuration
	Marker        string
	MarkerFile    string
	HeaderMaxLine int
	KeywordMin    int

	// Matching configuration
	FuzzyThreshold       float64
	PositionalMinPages   int
	PositionalStartRatio float64
	MaxWindowRunes       int
	FoldUnicode          bool

	// Truncation configuration
	TitleMinPages  int
	TitleRatio     float64
	TitleLongRatio float64
	DefaultRatio   float64

	// Output configuration
	TextCut         string
	RequireMarker   bool
	CleanSuffix     string
	PlaceholderText string

	// Application configuration
	ConfigFile  string
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	pol := policy.DefaultConfig()
	return &Config{
		Mode:                 ModeBatch,
		Task:                 string(pipeline.TaskDesensitize),
		InputDir:             currentDir,
		Workers:              runtime.NumCPU(),
		Host:                 DefaultHost,
		Port:                 DefaultPort,
		HeaderMaxLine:        DefaultHeaderMaxLine,
		KeywordMin:           DefaultKeywordMin,
		FuzzyThreshold:       cascade.DefaultFuzzyThreshold,
		PositionalMinPages:   cascade.DefaultPositionalMinPages,
		PositionalStartRatio: cascade.DefaultPositionalStartRatio,
		MaxWindowRunes:       cascade.DefaultMaxWindowRunes,
		TitleMinPages:        pol.TitleMinPages,
		TitleRatio:           pol.TitleRatio,
		TitleLongRatio:       pol.TitleLongRatio,
		DefaultRatio:         pol.DefaultRatio,
		TextCut:              string(engine.TextCutPage),
		CleanSuffix:          service.DefaultCleanSuffix,
		Version:              "1.0.0",
		ServerName:           "disclosure-trim",
		LogLevel:             DefaultLogLevel,
		MaxFileSize:          DefaultMaxFileSize,
	}
}

// Load parses args (without the program name) together with DISCLOSURE_*
// environment variables and an optional config file. Flags override the
// environment, which overrides the config file, which overrides defaults.
func Load(name string, args []string, stderr io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setupViperEnvironment(v, cfg)

	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	defineCommandLineFlags(flags, cfg)
	setupUsageMessage(flags, name, stderr)

	// Check for version flag before parsing
	if checkVersionFlag(args) {
		return nil, ErrVersionRequested
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	populateConfigFromViper(v, cfg)
	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("task", cfg.Task)
	v.SetDefault("input-dir", cfg.InputDir)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("host", cfg.Host)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.String("config", "", "Config file (yaml, toml or json)")
	flags.String("mode", cfg.Mode, "Run mode: 'batch' to process a directory, 'stdio' for MCP standard I/O, 'server' for HTTP")
	flags.String("task", cfg.Task, "Batch task: select, desensitize or extract")
	flags.String("input-dir", cfg.InputDir, "Directory containing input PDF files")
	flags.String("output-dir", cfg.OutputDir, "Directory for selected or desensitized PDF files")
	flags.String("text-dir", cfg.TextDir, "Directory for extracted text files")
	flags.String("summary-file", cfg.SummaryFile, "Write the batch summary to this file (.json or .csv)")
	flags.Bool("recursive", cfg.Recursive, "Descend into subdirectories of the input directory")
	flags.Int("workers", cfg.Workers, "Number of files processed concurrently")

	flags.String("host", cfg.Host, "Server host address (server mode only)")
	flags.Int("port", cfg.Port, "Server port (server mode only)")

	flags.String("marker", cfg.Marker, "Marker name overriding the task default")
	flags.String("marker-file", cfg.MarkerFile, "YAML file with additional or replacement markers")
	flags.Int("header-max-line", cfg.HeaderMaxLine, "Longest line, in characters, accepted as a section header")
	flags.Int("keyword-min", cfg.KeywordMin, "Minimum signature keywords on a page for the keyword tier")

	flags.Float64("fuzzy-threshold", cfg.FuzzyThreshold, "Similarity ratio accepted by the fuzzy tiers")
	flags.Int("positional-min-pages", cfg.PositionalMinPages, "Documents must exceed this page count for the positional tier")
	flags.Float64("positional-start-ratio", cfg.PositionalStartRatio, "Fraction of the document skipped by the positional tier")
	flags.Int("max-window-runes", cfg.MaxWindowRunes, "Skip the full-text window tier above this many characters (0 disables the limit)")
	flags.Bool("fold-unicode", cfg.FoldUnicode, "Apply Unicode compatibility folding (NFKC) before matching")

	flags.Int("title-min-pages", cfg.TitleMinPages, "Page count above which the short title ratio applies")
	flags.Float64("title-ratio", cfg.TitleRatio, "Fraction kept for long documents with a disclosure title")
	flags.Float64("title-long-ratio", cfg.TitleLongRatio, "Fraction kept for titled, short documents of at most title-min-pages pages")
	flags.Float64("default-ratio", cfg.DefaultRatio, "Fraction kept when no marker and no title signal exist")

	flags.String("text-cut", cfg.TextCut, "Extracted text ends at the anchor 'page' or at the marker 'line'")
	flags.Bool("require-marker", cfg.RequireMarker, "Extract text only from documents where the marker was found")
	flags.String("clean-suffix", cfg.CleanSuffix, "Suffix appended to the first directory of extracted text paths")
	flags.String("placeholder-text", cfg.PlaceholderText, "Text printed on placeholder pages")

	flags.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	flags.BoolP("version", "v", false, "Print version and exit")
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage(flags *pflag.FlagSet, name string, w io.Writer) {
	flags.Usage = func() {
		fmt.Fprintf(w, "Usage of %s:\n", name)
		fmt.Fprintf(w, "\ndisclosure-trim - locate markers in disclosure PDFs and keep only the pages before them\n\n")
		fmt.Fprintf(w, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  %s --input-dir=raw --output-dir=desensitized          # desensitize (default task)\n", name)
		fmt.Fprintf(w, "  %s --task=select --input-dir=raw --output-dir=forms   # copy disclosure forms\n", name)
		fmt.Fprintf(w, "  %s --task=extract --recursive --input-dir=forms --text-dir=text\n", name)
		fmt.Fprintf(w, "  %s --mode=stdio --input-dir=forms                      # MCP tools over stdio\n", name)
		fmt.Fprintf(w, "  %s --mode=server --port=8081                           # HTTP API\n", name)
		fmt.Fprintf(w, "\nEnvironment Variables:\n")
		fmt.Fprintf(w, "  Every option can be set as %s_<OPTION>, e.g. %s_INPUT_DIR, %s_FUZZY_THRESHOLD\n",
			EnvPrefix, EnvPrefix, EnvPrefix)
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.ConfigFile = v.GetString("config")
	cfg.Mode = strings.ToLower(v.GetString("mode"))
	cfg.Task = strings.ToLower(v.GetString("task"))
	cfg.InputDir = v.GetString("input-dir")
	cfg.OutputDir = v.GetString("output-dir")
	cfg.TextDir = v.GetString("text-dir")
	cfg.SummaryFile = v.GetString("summary-file")
	cfg.Recursive = v.GetBool("recursive")
	cfg.Workers = v.GetInt("workers")

	cfg.Host = v.GetString("host")
	cfg.Port = v.GetInt("port")

	cfg.Marker = v.GetString("marker")
	cfg.MarkerFile = v.GetString("marker-file")
	cfg.HeaderMaxLine = v.GetInt("header-max-line")
	cfg.KeywordMin = v.GetInt("keyword-min")

	cfg.FuzzyThreshold = v.GetFloat64("fuzzy-threshold")
	cfg.PositionalMinPages = v.GetInt("positional-min-pages")
	cfg.PositionalStartRatio = v.GetFloat64("positional-start-ratio")
	cfg.MaxWindowRunes = v.GetInt("max-window-runes")
	cfg.FoldUnicode = v.GetBool("fold-unicode")

	cfg.TitleMinPages = v.GetInt("title-min-pages")
	cfg.TitleRatio = v.GetFloat64("title-ratio")
	cfg.TitleLongRatio = v.GetFloat64("title-long-ratio")
	cfg.DefaultRatio = v.GetFloat64("default-ratio")

	cfg.TextCut = strings.ToLower(v.GetString("text-cut"))
	cfg.RequireMarker = v.GetBool("require-marker")
	cfg.CleanSuffix = v.GetString("clean-suffix")
	cfg.PlaceholderText = v.GetString("placeholder-text")

	cfg.LogLevel = strings.ToLower(v.GetString("loglevel"))
	cfg.MaxFileSize = v.GetInt64("maxfilesize")
}

func expandPaths(cfg *Config) {
	for _, p := range []*string{&cfg.InputDir, &cfg.OutputDir, &cfg.TextDir, &cfg.SummaryFile, &cfg.MarkerFile} {
		if *p == "" {
			continue
		}
		if expandedPath, err := filepath.Abs(*p); err == nil {
			*p = expandedPath
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeBatch, ModeStdio, ModeServer:
	default:
		return errors.New("mode must be one of 'batch', 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	task, err := pipeline.ParseTask(c.Task)
	if err != nil {
		return err
	}
	if c.Mode == ModeBatch {
		if err := c.validateBatch(task); err != nil {
			return err
		}
	}

	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if _, err := engine.ParseTextCut(c.TextCut); err != nil {
		return err
	}

	if c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy threshold must be in (0, 1], got %v", c.FuzzyThreshold)
	}
	if c.PositionalStartRatio < 0 || c.PositionalStartRatio > 1 {
		return fmt.Errorf("positional start ratio must be in [0, 1], got %v", c.PositionalStartRatio)
	}
	if c.HeaderMaxLine < 0 || c.PositionalMinPages < 0 || c.MaxWindowRunes < 0 {
		return errors.New("header max line, positional min pages and max window runes cannot be negative")
	}
	if c.KeywordMin < 1 {
		return errors.New("keyword min must be at least 1")
	}
	if err := c.PolicyConfig().Validate(); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

func (c *Config) validateBatch(task pipeline.Task) error {
	if c.InputDir == "" {
		return errors.New("input directory cannot be empty")
	}

	switch task {
	case pipeline.TaskExtract:
		if c.TextDir == "" {
			return errors.New("text directory is required for the extract task")
		}
	default:
		if c.OutputDir == "" {
			return fmt.Errorf("output directory is required for the %s task", task)
		}
		if filepath.Clean(c.OutputDir) == filepath.Clean(c.InputDir) {
			return errors.New("output directory must differ from the input directory")
		}
	}
	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Task: %s, InputDir: %s, OutputDir: %s, TextDir: %s, Workers: %d, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Task, c.InputDir, c.OutputDir, c.TextDir, c.Workers, c.LogLevel, c.MaxFileSize)
}

// IsBatchMode returns true if a batch run was requested
func (c *Config) IsBatchMode() bool {
	return c.Mode == ModeBatch
}

// IsServerMode returns true if running as an HTTP server
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if running as an MCP stdio server
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// Normalizer returns the text normalizer settings
func (c *Config) Normalizer() textnorm.Normalizer {
	return textnorm.Normalizer{FoldCompatibility: c.FoldUnicode}
}

// CascadeOptions returns the matching settings
func (c *Config) CascadeOptions() cascade.Options {
	opts := cascade.DefaultOptions()
	opts.FuzzyThreshold = c.FuzzyThreshold
	opts.PositionalMinPages = c.PositionalMinPages
	opts.PositionalStartRatio = c.PositionalStartRatio
	opts.MaxWindowRunes = c.MaxWindowRunes
	opts.Normalizer = c.Normalizer()
	return opts
}

// PolicyConfig returns the truncation settings
func (c *Config) PolicyConfig() policy.Config {
	pol := policy.DefaultConfig()
	pol.TitleMinPages = c.TitleMinPages
	pol.TitleRatio = c.TitleRatio
	pol.TitleLongRatio = c.TitleLongRatio
	pol.DefaultRatio = c.DefaultRatio
	return pol
}

// ServiceConfig returns the per-file service settings
func (c *Config) ServiceConfig() service.Config {
	return service.Config{
		InputDir:        c.InputDir,
		OutputDir:       c.OutputDir,
		TextDir:         c.TextDir,
		CleanSuffix:     c.CleanSuffix,
		PlaceholderText: c.PlaceholderText,
		RequireMarker:   c.RequireMarker,
		MaxFileSize:     c.MaxFileSize,
	}
}

// PipelineConfig returns the batch settings
func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Task:      pipeline.Task(c.Task),
		InputDir:  c.InputDir,
		Recursive: c.Recursive,
		Workers:   c.Workers,
		Marker:    c.Marker,
	}
}
