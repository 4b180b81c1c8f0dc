// Package main is the Scout CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gatherly/scout/internal/analytics"
	"github.com/gatherly/scout/internal/cli"
	"github.com/gatherly/scout/internal/config"
	"github.com/gatherly/scout/internal/gateway"
	"github.com/gatherly/scout/internal/models"
	"github.com/gatherly/scout/internal/relevance"
	"github.com/gatherly/scout/internal/search"
	"github.com/gatherly/scout/internal/server"
	"github.com/gatherly/scout/internal/suggest"
	"github.com/gatherly/scout/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/scout/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "scout server" from the project dir uses the project's config (including debug).
// Returns the config and the path that was actually loaded (for reload watching, etc.).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "suggest":
		runSuggest()
	case "popular":
		runPopular()
	case "status":
		runStatus()
	case "seed":
		runSeed()
	case "version", "--version", "-v":
		fmt.Printf("scout version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-type fetches, analytics writes, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	scorer := components.Scorer
	watcher := config.NewWatcher(resolvedConfigPath, func(updated *config.Config) {
		scorer.SetWeights(updated.Relevance)
		logger.Info("relevance weights reloaded", zap.String("config_path", resolvedConfigPath))
	}, logger)
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := watcher.Start(watchCtx); err != nil {
		logger.Warn("config watcher disabled", zap.Error(err))
	} else {
		defer watcher.Stop()
	}

	srv := server.NewServer(
		components.Engine,
		components.Suggester,
		components.Analytics,
		components.Gateways,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
	components.Recorder.Wait()
}

// printSearchUsage prints search subcommand usage and filter hints.
func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: scout search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces. Multi-word queries work with or without quotes.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Results span every entity type by default. Filters narrow them down:
  • Use --types meeting,post to restrict to specific entity types.
  • Use --author to keep results from one author (repeatable via commas).
  • Use --from/--to (YYYY-MM-DD) to bound the creation date.
  • Use --sort-by date --sort-dir asc for chronological output.

Examples:
  scout search quarterly planning
  scout search "quarterly planning"                 # same as above
  scout search --types meeting standup              # meetings only
  scout search --author "Dana" --from 2026-01-01 roadmap
  scout search --sort-by title --page 2 --page-size 50 review
`)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting (e.g. "team standup" vs team standup).
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the query
// to the front of the slice so that flag.Parse() sees them. Go's flag package
// stops at the first non-flag argument, so "scout search \"query\" -page 2"
// would otherwise leave -page unparsed.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func parseOutputFormat(s string) (cli.SearchOutputFormat, error) {
	switch s {
	case "json":
		return cli.OutputJSON, nil
	case "text":
		return cli.OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	page := fs.Int("page", 1, "page number (1-based)")
	pageSize := fs.Int("page-size", 0, "results per page (0 = server default)")
	types := fs.String("types", "", "comma-separated entity types (meeting,post,comment,user)")
	author := fs.String("author", "", "comma-separated author names to keep")
	from := fs.String("from", "", "earliest creation date (YYYY-MM-DD)")
	to := fs.String("to", "", "latest creation date (YYYY-MM-DD)")
	activeOnly := fs.String("active-only", "", "restrict to active entities (true/false; server default true)")
	sortBy := fs.String("sort-by", "", "sort field: relevance, date, or title")
	sortDir := fs.String("sort-dir", "", "sort direction: asc or desc")
	outputFormat := fs.String("output", "text", "output format: text (human-readable) or json (parseable)")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	params := url.Values{}
	params.Set("q", queryStr)
	if *page > 1 {
		params.Set("page", strconv.Itoa(*page))
	}
	if *pageSize > 0 {
		params.Set("page_size", strconv.Itoa(*pageSize))
	}
	for name, value := range map[string]string{
		"types":       *types,
		"author":      *author,
		"from":        *from,
		"to":          *to,
		"active_only": *activeOnly,
		"sort_by":     *sortBy,
		"sort_dir":    *sortDir,
	} {
		if value != "" {
			params.Set(name, value)
		}
	}

	var results models.SearchResults
	if err := getJSON(*serverURL+"/api/v1/search?"+params.Encode(), &results); err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSearchResults(os.Stdout, &results, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	limit := fs.Int("limit", 0, "maximum suggestions (0 = server default)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(searchArgsReorder(os.Args[2:]))

	if fs.NArg() < 1 {
		fmt.Println("Usage: scout suggest [flags] <prefix>")
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	params := url.Values{}
	params.Set("q", queryStr)
	if *limit > 0 {
		params.Set("limit", strconv.Itoa(*limit))
	}

	var suggestions []*models.SearchSuggestion
	if err := getJSON(*serverURL+"/api/v1/suggestions?"+params.Encode(), &suggestions); err != nil {
		fmt.Fprintf(os.Stderr, "Suggest failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteSuggestions(os.Stdout, suggestions, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runPopular() {
	fs := flag.NewFlagSet("popular", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	limit := fs.Int("limit", 0, "maximum terms (0 = server default)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	endpoint := *serverURL + "/api/v1/popular"
	if *limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(*limit)
	}
	var out struct {
		Terms []string `json:"terms"`
	}
	if err := getJSON(endpoint, &out); err != nil {
		fmt.Fprintf(os.Stderr, "Popular terms failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WritePopularTerms(os.Stdout, out.Terms, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	var status map[string]any
	if err := getJSON(*serverURL+"/api/v1/status", &status); err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteStatus(os.Stdout, status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// seedFile is the JSON shape accepted by "scout seed".
type seedFile struct {
	Meetings []*models.Meeting `json:"meetings"`
	Posts    []*models.Post    `json:"posts"`
	Comments []*models.Comment `json:"comments"`
	Users    []*models.User    `json:"users"`
}

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: scout seed [flags] <entities.json>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read seed file: %v\n", err)
		os.Exit(1)
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		fmt.Printf("Failed to parse seed file: %v\n", err)
		os.Exit(1)
	}

	store, err := gateway.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Printf("Failed to open entity database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	inserted := 0
	for _, m := range seed.Meetings {
		if err := store.InsertMeeting(ctx, m); err != nil {
			fmt.Printf("Insert meeting %q failed: %v\n", m.Title, err)
			os.Exit(1)
		}
		inserted++
	}
	for _, p := range seed.Posts {
		if err := store.InsertPost(ctx, p); err != nil {
			fmt.Printf("Insert post %q failed: %v\n", p.Title, err)
			os.Exit(1)
		}
		inserted++
	}
	for _, c := range seed.Comments {
		if err := store.InsertComment(ctx, c); err != nil {
			fmt.Printf("Insert comment %s failed: %v\n", c.ID, err)
			os.Exit(1)
		}
		inserted++
	}
	for _, u := range seed.Users {
		if err := store.InsertUser(ctx, u); err != nil {
			fmt.Printf("Insert user %q failed: %v\n", u.FullName, err)
			os.Exit(1)
		}
		inserted++
	}
	fmt.Printf("Seeded %d entities from %s into %s\n", inserted, path, cfg.Storage.DatabasePath)
}

func getJSON(endpoint string, out any) error {
	resp, err := http.Get(endpoint)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Components holds initialized services.
type Components struct {
	Gateways  *gateway.Store
	Analytics *analytics.SQLiteStore
	Scorer    *relevance.Scorer
	Recorder  *analytics.Recorder
	Engine    *search.Service
	Suggester *suggest.Engine
}

func (c *Components) Close() {
	if c.Gateways != nil {
		_ = c.Gateways.Close()
	}
	if c.Analytics != nil {
		_ = c.Analytics.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	store, err := gateway.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize entity gateway: %w", err)
	}

	analyticsStore, err := analytics.NewSQLiteStore(cfg.Storage.AnalyticsPath)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize analytics store: %w", err)
	}

	scorer := relevance.NewScorer(&cfg.Relevance)
	recorder := analytics.NewRecorder(analyticsStore, logger)
	engine := search.NewService(store, scorer, recorder, logger)
	suggester := suggest.NewEngine(store, analyticsStore, logger)

	return &Components{
		Gateways:  store,
		Analytics: analyticsStore,
		Scorer:    scorer,
		Recorder:  recorder,
		Engine:    engine,
		Suggester: suggester,
	}, nil
}

func printUsage() {
	fmt.Println(`scout - Cross-entity search for meetings, posts, comments, and users

Usage:
  scout server [flags]            Start the HTTP server
  scout search [flags] <query>    Search across all entity types
  scout suggest [flags] <prefix>  Autocomplete suggestions for a partial query
  scout popular [flags]           Most frequently searched terms
  scout status [flags]            Show entity counts and storage paths
  scout seed [flags] <file>       Load entities from a JSON file
  scout version                   Show version
  scout help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/scout/config.yaml)
  --debug            Enable debug logging (per-type fetches, analytics writes, etc.)

Search Flags:
  --server string       Server URL (default: http://localhost:8080)
  --page int            Page number, 1-based (default: 1)
  --page-size int       Results per page (default: server config, max 100)
  --types string        Comma-separated entity types: meeting,post,comment,user
  --author string       Comma-separated author names to keep
  --from string         Earliest creation date, YYYY-MM-DD
  --to string           Latest creation date, YYYY-MM-DD
  --active-only string  Restrict to active entities: true or false (default: true)
  --sort-by string      Sort field: relevance, date, or title (default: relevance)
  --sort-dir string     Sort direction: asc or desc (default: desc)
  --output string       Output format: text or json (default: text)

Suggest Flags:
  --server string    Server URL (default: http://localhost:8080)
  --limit int        Maximum suggestions (default: server config)
  --output string    Output format: text or json

Popular Flags:
  --server string    Server URL (default: http://localhost:8080)
  --limit int        Maximum terms (default: server config)
  --output string    Output format: text or json

Status Flags:
  --server string    Server URL (default: http://localhost:8080)
  --output string    Output format: text or json

Seed Flags:
  --config string    Config file path (database location comes from config)

Examples:
  scout server
  scout search "quarterly planning"
  scout search --types meeting,post --sort-by date standup
  scout search --output json roadmap   # structured JSON for other apps
  scout suggest tea
  scout popular --limit 5
  scout status
  scout seed fixtures/entities.json`)
}
