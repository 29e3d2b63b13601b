package papyrus

import (
	"go.uber.org/zap"

	"github.com/tsawler/papyrus/llm"
)

// Config controls a parse. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	// LLMProvider enables LLM assistance when non-empty: section-title
	// validation, vision-based math extraction, and (if requested)
	// reference parsing. Supported: "openai", "anthropic", "ollama".
	LLMProvider string
	// LLMModel is the model name passed to the provider.
	LLMModel string
	// ExtractReferences requests structured reference parsing. It has
	// no effect without an LLM provider.
	ExtractReferences bool
	// DisableMath skips math-span markup entirely.
	DisableMath bool
	// KeepArtifacts leaves the toolchain working directory in place for
	// debugging instead of removing it after the parse.
	KeepArtifacts bool
	// Verbose enables debug-level logging.
	Verbose bool
	// Logger overrides the default logger.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns a config with no LLM assistance: font-based
// sections and heuristic math markup only.
func DefaultConfig() Config {
	return Config{}
}

// Parser parses one document. Construct with New or NewWithConfig, then
// call a terminal operation (Sections, PaperOutput, Pages).
type Parser struct {
	source string
	cfg    Config
	log    *zap.SugaredLogger
	llm    *llm.Client
}

// New creates a parser for a local path or http(s) URL with default
// configuration.
func New(source string) *Parser {
	return NewWithConfig(source, DefaultConfig())
}

// NewWithConfig creates a parser with explicit configuration.
func NewWithConfig(source string, cfg Config) *Parser {
	logger := cfg.Logger
	if logger == nil {
		logger = newLogger(cfg.Verbose)
	}
	return &Parser{source: source, cfg: cfg, log: logger}
}

// WithLLM enables LLM assistance with the given provider and model.
func (p *Parser) WithLLM(provider, model string) *Parser {
	p.cfg.LLMProvider = provider
	p.cfg.LLMModel = model
	return p
}

// WithReferences requests structured reference extraction.
func (p *Parser) WithReferences() *Parser {
	p.cfg.ExtractReferences = true
	return p
}

// WithoutMath disables math-span markup.
func (p *Parser) WithoutMath() *Parser {
	p.cfg.DisableMath = true
	return p
}

// newLogger is silent unless verbose is set; callers who want library
// logs in other configurations supply Config.Logger.
func newLogger(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return zap.NewNop().Sugar()
	}
	logger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
