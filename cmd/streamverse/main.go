package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/streamverse/internal/adapter"
	"github.com/mmcdole/streamverse/internal/adapter/assistant/gemini"
	"github.com/mmcdole/streamverse/internal/adapter/catalog/tmdb"
	"github.com/mmcdole/streamverse/internal/domain"
	"github.com/mmcdole/streamverse/internal/mylist"
	"github.com/mmcdole/streamverse/internal/search"
	"github.com/mmcdole/streamverse/internal/service"
	"github.com/mmcdole/streamverse/internal/store"
	"github.com/mmcdole/streamverse/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

var stdin = bufio.NewReader(os.Stdin)

func main() {
	var (
		showVersion bool
		setup       bool
		forgetKeys  bool
		reset       bool
		category    string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&setup, "setup", false, "enter API keys and write the config file")
	flag.BoolVar(&forgetKeys, "forget-keys", false, "remove API keys saved from the app")
	flag.BoolVar(&reset, "reset", false, "wipe saved keys and My List")
	flag.StringVar(&category, "category", "", "start in category (all, movies, web, anime, shows, my list)")
	flag.Parse()

	if showVersion {
		fmt.Printf("streamverse %s\n", Version)
		return
	}

	if err := run(options{setup: setup, forgetKeys: forgetKeys, reset: reset, category: category}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	setup      bool
	forgetKeys bool
	reset      bool
	category   string
}

func run(opts options) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closer, err := adapter.SetupLogger(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting streamverse", "version", Version)

	state, err := store.Open(cfg.Storage.Path)
	if err != nil {
		// Local state is optional; run without persistence
		logger.Warn("failed to open state store, using memory", "path", cfg.Storage.Path, "error", err)
		state = store.NewMemoryStore()
	}
	defer state.Close()

	creds := service.NewCredentialService(state, map[domain.Provider]string{
		domain.ProviderCatalog:   cfg.Catalog.APIKey,
		domain.ProviderAssistant: cfg.Assistant.APIKey,
	}, logger)

	switch {
	case opts.setup:
		return runSetupFlow(cfg, creds)
	case opts.forgetKeys:
		if err := forgetStoredKeys(creds); err != nil {
			return fmt.Errorf("failed to forget keys: %w", err)
		}
		fmt.Println("✓ Saved API keys removed.")
		return nil
	case opts.reset:
		if err := state.Clear(); err != nil {
			return fmt.Errorf("failed to reset local state: %w", err)
		}
		fmt.Println("✓ Local state cleared.")
		return nil
	}

	category := opts.category
	startCategory, ok := search.ResolveCategory(cfg.UI.DefaultCategory)
	if !ok {
		startCategory = domain.CategoryAll
	}
	if category != "" {
		resolved, ok := search.ResolveCategory(category)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
		}
		startCategory = resolved
	}

	// Create provider clients
	catalogClient := tmdb.NewClient(tmdb.Options{
		BaseURL:          cfg.Catalog.BaseURL,
		ImageBaseURL:     cfg.Catalog.ImageBaseURL,
		PlaceholderImage: cfg.Catalog.PlaceholderImage,
		Language:         cfg.Catalog.Language,
		Timeout:          cfg.Catalog.Timeout,
	}, logger)
	assistant := gemini.NewClient(gemini.Models{
		Lite:           cfg.Assistant.LiteModel,
		Thinking:       cfg.Assistant.ThinkingModel,
		Search:         cfg.Assistant.SearchModel,
		ThinkingBudget: cfg.Assistant.ThinkingBudget,
	}, logger)

	// Create services
	catalogSvc := service.NewCatalogService(catalogClient, nil, nil, logger)
	list := mylist.Load(state, logger)
	session := service.NewSessionController(catalogSvc, list, creds, logger)
	chat := service.NewChatSession(assistant, creds, logger)

	// Create TUI model
	model := tui.NewModel(session, chat, tui.Options{
		DefaultCategory: startCategory,
		FetchTimeout:    cfg.Catalog.Timeout,
		Logger:          logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI", "category", startCategory)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow prompts for both API keys, writes them to the config file
// and stores them so they replace keys saved from the app
func runSetupFlow(cfg *adapter.Config, creds *service.CredentialService) error {
	fmt.Println()
	fmt.Println("Welcome to StreamVerse!")
	fmt.Println()

	for {
		key, err := readSecret("TMDb API key (v3 auth): ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if key != "" {
			cfg.Catalog.APIKey = key
		}
		if cfg.Catalog.APIKey != "" {
			break
		}
		fmt.Println("The TMDb key is required. Get one at https://www.themoviedb.org/signup")
	}

	assistantKey, err := readSecret("Gemini API key (optional, enter to skip): ")
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if assistantKey != "" {
		cfg.Assistant.APIKey = assistantKey
	}

	dir := adapter.DefaultConfigPath()
	if err := adapter.SaveConfig(cfg, dir); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	if err := storeSetupKeys(creds, map[domain.Provider]string{
		domain.ProviderCatalog:   cfg.Catalog.APIKey,
		domain.ProviderAssistant: assistantKey,
	}); err != nil {
		return fmt.Errorf("failed to store keys: %w", err)
	}

	fmt.Println()
	fmt.Printf("✓ Configuration saved to %s\n", dir)
	fmt.Println("Run streamverse again to start browsing.")
	return nil
}

// storeSetupKeys saves every non-empty key, replacing any key saved from the app
func storeSetupKeys(creds *service.CredentialService, keys map[domain.Provider]string) error {
	var errs []error
	for p, key := range keys {
		if strings.TrimSpace(key) == "" {
			continue
		}
		if _, err := creds.Save(p, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// forgetStoredKeys removes saved keys so configured ones apply again
func forgetStoredKeys(creds *service.CredentialService) error {
	return errors.Join(
		creds.Clear(domain.ProviderCatalog),
		creds.Clear(domain.ProviderAssistant),
	)
}

// readSecret reads a line without echo when stdin is a terminal
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
