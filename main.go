package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"seo_article_generator/config"
	"seo_article_generator/generator"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "seo-article-generator",
	Short: "Generate SEO articles with an LLM through a step-by-step wizard",
	Long: `Collects article parameters in four steps (basic info, content details,
style, review), asks the configured LLM for the article and exports it as
Markdown or plain text.

Run "serve" for the HTTP API or "generate" for a one-shot run.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.json", "path to config.json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	rootCmd.AddCommand(serveCmd, generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the logger and generation client shared by all commands.
func setup() (config.Config, *logrus.Logger, *generator.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger := newLogger(cfg.LogLevel)

	llm, err := buildLLM(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	client, err := generator.NewClient(llm, generator.ClientOptions{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Logger:      logger,
	})
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger.WithFields(logrus.Fields{"provider": cfg.LLM.Provider, "model": cfg.LLM.Model}).Debug("generation client ready")
	return cfg, logger, client, nil
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func buildLLM(cfg config.Config) (generator.LLMClient, error) {
	settings := &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		BaseURL:  cfg.LLM.BaseURL,
	}
	switch cfg.LLM.Provider {
	case "anthropic":
		return generator.NewAnthropicLLMFromConfig(settings)
	case "openai", "deepseek":
		// DeepSeek 走 OpenAI 兼容接口，base_url 已在配置校验时要求。
		return generator.NewOpenAILLMFromConfig(settings)
	case "mock":
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
