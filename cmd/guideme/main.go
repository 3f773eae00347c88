package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"guideme/pkg/actions"
	"guideme/pkg/api"
	"guideme/pkg/chat"
	"guideme/pkg/config"
	"guideme/pkg/logging"
	"guideme/pkg/ui"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

func main() {
	showVersion := flag.Bool("version", false, "Print version information and exit")
	configPath := flag.String("config", "", "Path to the configuration file")
	listModels := flag.Bool("list-models", false, "List the models the endpoint offers and exit")
	listRoles := flag.Bool("list-roles", false, "List the assistant roles the endpoint offers and exit")
	role := flag.String("role", "", "Assistant role for this session (overrides config)")
	model := flag.String("model", "", "Model for this session (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	path := *configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if *role != "" {
		cfg.Chat.Role = *role
	}
	if *model != "" {
		cfg.Chat.Model = *model
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL)
	if cfg.API.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)
	}

	if *listModels {
		listEndpointCatalog("Models", func(ctx context.Context) (map[string]string, error) { return client.Models(ctx) })
		return
	}
	if *listRoles {
		listEndpointCatalog("Roles", func(ctx context.Context) (map[string]string, error) { return client.Roles(ctx) })
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "guideme requires an interactive terminal")
		os.Exit(1)
	}

	slog.Info("session_start",
		"base_url", cfg.API.BaseURL,
		"model", cfg.Chat.Model,
		"role", cfg.Chat.Role)

	conv := chat.NewConversation()
	orch := chat.NewOrchestrator(conv, cfg.Chat.Role, cfg.Chat.Model)
	widget := ui.NewWidget(client, orch, &actions.OSC52Clipboard{}, newSpeaker(cfg))

	if _, err := tea.NewProgram(widget).Run(); err != nil {
		slog.Error("session_crashed", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	slog.Info("session_end", "session_id", conv.SessionID())
}

// newSpeaker probes for a usable speech command; sessions without one get
// the no-op speaker.
func newSpeaker(cfg config.Config) actions.Speaker {
	speaker, err := actions.NewCommandSpeaker(cfg.Speech.Command)
	if err != nil {
		slog.Warn("speech_unavailable", "error", err)
		return actions.NullSpeaker{}
	}
	return speaker
}

func listEndpointCatalog(title string, fetch func(context.Context) (map[string]string, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	catalog, err := fetch(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", title, err)
		os.Exit(1)
	}

	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%s:\n", title)
	for _, name := range names {
		if catalog[name] != "" {
			fmt.Printf("  %-24s %s\n", name, catalog[name])
		} else {
			fmt.Printf("  %s\n", name)
		}
	}
}
