package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/guarzo/webfonts/common"
	"github.com/guarzo/webfonts/modules/webfonts"
)

const usageText = `usage: webfonts [flags] <command> [arg]

commands:
  weights             list every weight/variant
  subsets             list every subset
  categories          list every category
  weight <weight>     fonts available in a weight (400 = regular)
  subset <subset>     fonts supporting a subset
  category <category> fonts in a category
  url                 print the catalog request URL
  cache-dir           print the directory holding fonts.json
  refresh             rebuild the index if fonts.json is missing or older than
                      24h; does nothing while the cached index is fresh

flags:
`

// run parses flags over the environment config and executes one command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := webfonts.LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("webfonts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.APIKey, "key", cfg.APIKey, "API key (WEBFONTS_API_KEY)")
	fs.StringVar(&cfg.Sort, "sort", cfg.Sort, "sort order: alpha, date, popularity, style, trending (WEBFONTS_SORT)")
	fs.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "directory holding fonts.json (WEBFONTS_CACHE_DIR)")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "catalog endpoint (WEBFONTS_BASE_URL)")
	token := fs.String("token", "", "optional OAuth2 access token sent as a bearer credential")
	verbose := fs.Bool("v", false, "log refresh activity to stderr")
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("command is required")
	}

	svc, err := newService(cfg, strings.TrimSpace(*token), *verbose, stderr)
	if err != nil {
		return err
	}

	lines, err := execute(ctx, svc, rest[0], rest[1:])
	if errors.Is(err, webfonts.ErrNoFonts) {
		fmt.Fprintln(stdout, webfonts.ErrorMessage)
		return nil
	}
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(stdout, line)
	}
	return nil
}

func newService(cfg webfonts.Config, token string, verbose bool, stderr io.Writer) (webfonts.FontService, error) {
	opts := common.HttpClientOptions{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
	}
	if token != "" {
		opts.TokenSource = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	}
	client := webfonts.NewCatalogClient(cfg.BaseURL, common.NewHttpClient(&http.Client{}, opts))

	blobs, err := common.NewDirStore(cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	var logger common.Logger = common.NopLogger{}
	if verbose {
		handlerOpts := &slog.HandlerOptions{Level: slog.LevelDebug}
		logger = common.NewSlogLogger(slog.New(slog.NewTextHandler(stderr, handlerOpts)))
	}

	return webfonts.NewFontService(client, webfonts.NewCacheStore(blobs), webfonts.ServiceOptions{
		APIKey:   cfg.APIKey,
		Sort:     webfonts.SortOrder(cfg.Sort),
		CacheDir: cfg.CacheDir,
		Logger:   logger,
	})
}

func execute(ctx context.Context, svc webfonts.FontService, command string, args []string) ([]string, error) {
	needArg := func() (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("%s takes exactly one argument", command)
		}
		return args[0], nil
	}

	switch command {
	case "weights":
		return svc.ListWeights(ctx)
	case "subsets":
		return svc.ListSubsets(ctx)
	case "categories":
		return svc.ListCategories(ctx)
	case "weight":
		arg, err := needArg()
		if err != nil {
			return nil, err
		}
		return svc.FontsByWeight(ctx, arg)
	case "subset":
		arg, err := needArg()
		if err != nil {
			return nil, err
		}
		return svc.FontsBySubset(ctx, arg)
	case "category":
		arg, err := needArg()
		if err != nil {
			return nil, err
		}
		return svc.FontsByCategory(ctx, arg)
	case "url":
		u, err := svc.CatalogURL()
		if err != nil {
			return nil, err
		}
		return []string{u}, nil
	case "cache-dir":
		return []string{svc.CacheDir()}, nil
	case "refresh":
		if err := svc.RefreshIfStale(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
}
