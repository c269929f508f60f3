// cmd/gddoc/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"gddoc/internal/builder"
	"gddoc/internal/config"
	"gddoc/internal/scaffold"
	"gddoc/internal/server"

	"go.uber.org/zap"
)

type appConfig struct {
	debug  bool
	port   int
	unsafe bool
}

const (
	contentDir  = "content"
	templateDir = "templates"
	staticDir   = "static"
	outputDir   = "public"
	configFile  = "site.yaml"
)

func main() {
	appCfg := appConfig{}
	flag.BoolVar(&appCfg.debug, "debug", false, "Enable debug logging.")
	flag.IntVar(&appCfg.port, "port", 1313, "Port for the local development server.")
	flag.BoolVar(&appCfg.unsafe, "unsafe", false, "Disable HTML sanitization of page content.")
	flag.Usage = printHelp
	flag.Parse()

	if err := run(appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func run(appCfg appConfig) error {
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return nil
	}

	logger, err := newLogger(appCfg.debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	opts := builder.BuildOptions{
		Unsafe: appCfg.unsafe,
		Debug:  appCfg.debug,
		Logger: logger,
	}

	switch args[0] {
	case "gen":
		opts.CleanDestination = true
		if err := runFullBuild(opts); err != nil {
			return err
		}
		fmt.Println("✅ Build successful.")
		return nil

	case "serve":
		srvOpts := server.Options{
			Port:       appCfg.port,
			PublicDir:  outputDir,
			WatchPaths: []string{contentDir, templateDir, staticDir, configFile},
			Logger:     logger,
		}
		return server.Run(srvOpts, runFullBuild, opts)

	case "new":
		if len(args) < 3 {
			flag.Usage()
			return nil
		}
		if args[1] == "site" {
			return scaffold.CreateNewSite(args[2])
		}
		path, err := scaffold.CreateNewContent(".", args[1], args[2], configFile)
		if err != nil {
			return err
		}
		fmt.Println("Created:", path)
		return nil

	default:
		flag.Usage()
	}

	return nil
}

// runFullBuild loads config and theme and regenerates the site. The dev
// server calls it on every change.
func runFullBuild(opts builder.BuildOptions) error {
	fmt.Println("--- Building site ---")
	siteCfg, err := config.LoadSiteConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load site config: %w", err)
	}

	theme, err := builder.LoadTheme(templateDir, siteCfg)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	pageCount, err := builder.BuildSite(outputDir, contentDir, staticDir, siteCfg, theme, opts)
	if err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}
	fmt.Printf("📄 Site: %d pages generated.\n", pageCount)
	return nil
}

func printHelp() {
	fmt.Println("gddoc - a documentation site generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gddoc [global-flags] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  gen                Generate the site into ./public")
	fmt.Println("  serve              Run a local dev server with auto-rebuild")
	fmt.Println("  new site <name>    Create a new site scaffold")
	fmt.Println("  new <type> <title> Create new content from the default archetype")
	fmt.Println()
	fmt.Println("Global Flags:")
	flag.PrintDefaults()
}
