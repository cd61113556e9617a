// Command mcpchat is an interactive chat client that bridges a
// chat-completions API to an MCP tool backend.
//
// Usage:
//
//	mcpchat <path-to-tool-server>
//
// The positional argument is the executable of an MCP server spoken to over
// stdio, e.g. the bundled cmd/weatherserver. Each line typed at the prompt
// is sent to the configured model; when the model requests tool calls they
// are relayed to the backend and the model's final answer is printed.
// Type 'quit' or press Ctrl+C to exit.
//
// Configuration comes from the environment (a .env file is honored):
//
//	OPENAI_API_KEY / ANTHROPIC_API_KEY / GOOGLE_API_KEY
//	MCPCHAT_PROVIDER  openai (default), anthropic, or google
//	MCPCHAT_MODEL     model override for the selected provider
//	OPENAI_BASE_URL   OpenAI-compatible endpoint override
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	ai "github.com/swingAnt/mcpchat"
	"github.com/swingAnt/mcpchat/agent"
	"github.com/swingAnt/mcpchat/chat"
	"github.com/swingAnt/mcpchat/mcp"
	"github.com/swingAnt/mcpchat/provider/anthropic"
	"github.com/swingAnt/mcpchat/provider/google"
	"github.com/swingAnt/mcpchat/provider/openai"
	"github.com/swingAnt/mcpchat/tool"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <path-to-tool-server>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(target string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connector, err := mcp.Connect(ctx, target, nil)
	if err != nil {
		return err
	}
	defer connector.Disconnect()

	rawTools, err := connector.ListTools(ctx)
	if err != nil {
		return err
	}

	registry := tool.NewRegistry()
	registry.Populate(rawTools)
	slog.Info("connected to tool backend", "target", target, "tools", registry.Names())

	provider, err := buildProvider(ctx, cfg)
	if err != nil {
		return err
	}

	agentOpts := []agent.Option{agent.WithChatOptions(chatOptions(cfg)...)}
	if cfg.SystemPrompt != "" {
		agentOpts = append(agentOpts, agent.WithSystemPrompt(cfg.SystemPrompt))
	}
	orchestrator := agent.New(provider, registry, connector, agentOpts...)

	session := chat.New(orchestrator)

	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stdout, "\nshutting down")
		return nil
	case err := <-done:
		return err
	}
}

func buildProvider(ctx context.Context, cfg *Config) (ai.ChatProvider, error) {
	switch cfg.Provider {
	case "openai":
		opts := []openai.ClientOption{openai.WithModel(cfg.Model)}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		return openai.New(cfg.OpenAIKey, opts...), nil
	case "anthropic":
		return anthropic.New(cfg.AnthropicKey, anthropic.WithModel(cfg.Model)), nil
	case "google":
		return google.New(ctx, cfg.GoogleKey, google.WithModel(cfg.Model))
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func chatOptions(cfg *Config) []ai.Option {
	return []ai.Option{
		ai.WithMaxTokens(cfg.MaxTokens),
		ai.WithTemperature(cfg.Temperature),
		ai.WithTopP(cfg.TopP),
		ai.WithFrequencyPenalty(cfg.FrequencyPenalty),
		ai.WithPresencePenalty(cfg.PresencePenalty),
	}
}
