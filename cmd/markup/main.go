package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"markup/internal/config"
	"markup/internal/css"
	"markup/internal/html"
	"markup/internal/resolver"
	"markup/pkg/frontend"
)

var (
	// Input flags
	inputFile = flag.String("input", "", "Input file path (default: stdin)")
	inputDir  = flag.String("input-dir", "", "Process all matching files in directory")

	// Configuration flags
	mode     = flag.String("mode", string(config.ModeDocument), "Input mode (html, css, document)")
	tokens   = flag.Bool("tokens", true, "Print the HTML token stream")
	coalesce = flag.Bool("coalesce", true, "Print runs of character tokens as text")
	rules    = flag.Bool("rules", true, "Print parsed style rules")
	match    = flag.Bool("match", false, "Report elements matched by each rule")
	computed = flag.Bool("computed", false, "Print resolved styles for each element")

	// Output control flags
	verbose = flag.Bool("verbose", false, "Log processing details to stderr")
	stats   = flag.Bool("stats", false, "Show processing statistics")
)

func main() {
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync() //nolint:errcheck

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	engine := frontend.New(cfg)

	switch {
	case *inputDir != "":
		err = runBatch(engine, cfg, logger)
	case *inputFile != "":
		err = runFile(engine, cfg, *inputFile, logger)
	default:
		err = runStdin(engine, cfg, logger)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a development logger when verbose, a no-op one otherwise
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// buildConfig creates configuration from command line flags
func buildConfig() (config.Config, error) {
	if *inputFile != "" && *inputDir != "" {
		return config.Config{}, fmt.Errorf("cannot specify both -input and -input-dir")
	}

	m, err := config.ParseMode(*mode)
	if err != nil {
		return config.Config{}, err
	}

	cfg := config.Config{
		Mode:           m,
		ShowTokens:     *tokens,
		CoalesceText:   *coalesce,
		ShowRules:      *rules,
		MatchSelectors: *match,
		ComputedStyles: *computed,
	}
	return cfg, cfg.Validate()
}

// runFile processes a single input file
func runFile(engine *frontend.Engine, cfg config.Config, path string, logger *zap.Logger) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return process(engine, cfg, string(content), path, logger)
}

// runStdin processes input from stdin
func runStdin(engine *frontend.Engine, cfg config.Config, logger *zap.Logger) error {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read from stdin: %w", err)
	}
	return process(engine, cfg, string(content), "<stdin>", logger)
}

// runBatch processes every file in a directory, continuing past failures
func runBatch(engine *frontend.Engine, cfg config.Config, logger *zap.Logger) error {
	files, err := findInputFiles(*inputDir, cfg.Mode)
	if err != nil {
		return fmt.Errorf("failed to find input files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no input files found in directory: %s", *inputDir)
	}

	var errs error
	for i, path := range files {
		logger.Info("processing file", zap.Int("index", i+1), zap.Int("total", len(files)), zap.String("path", path))
		if err := runFile(engine, cfg, path, logger); err != nil {
			logger.Warn("file failed", zap.String("path", path), zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// process runs the engine over one input and prints the result
func process(engine *frontend.Engine, cfg config.Config, content, name string, logger *zap.Logger) error {
	result, err := engine.Process(content)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", name, err)
	}

	logger.Debug("processed input",
		zap.String("name", name),
		zap.Int("tokens", result.ProcessingStats.HTMLTokens),
		zap.Int("stylesheets", result.ProcessingStats.StyleSheets),
		zap.Int("rules", result.ProcessingStats.CSSRulesParsed),
	)

	if len(result.Tokens) > 0 && cfg.ShowTokens {
		printTokens(os.Stdout, result.Tokens, cfg.CoalesceText)
	}
	if cfg.ShowRules {
		for i, sheet := range result.StyleSheets {
			printStylesheet(os.Stdout, i, sheet)
		}
	}
	for _, m := range result.RuleMatches {
		fmt.Printf("match sheet=%d rule=%d selector=%q elements=%d\n", m.Sheet, m.Rule, m.Selector.String(), m.Elements)
	}
	for _, es := range result.ComputedStyles {
		fmt.Printf("%s { %s } /* %q */\n", es.Element, resolver.StylesString(es.Styles), es.Text)
	}

	if *stats || *verbose {
		showProcessingStats(result, name)
	}
	return nil
}

// printTokens writes one token per line
func printTokens(w io.Writer, toks []html.Token, coalesce bool) {
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			fmt.Fprintf(w, "TEXT %q\n", text.String())
			text.Reset()
		}
	}

	for _, tok := range toks {
		if c, ok := tok.(*html.Char); ok && coalesce {
			text.WriteRune(c.Rune)
			continue
		}
		flush()
		fmt.Fprintf(w, "%s %s\n", tok.Kind(), tok)
	}
	flush()
}

// printStylesheet writes the rules of a style sheet back as CSS
func printStylesheet(w io.Writer, index int, sheet *css.Stylesheet) {
	fmt.Fprintf(w, "/* stylesheet %d: %d rules */\n", index, len(sheet.Rules))
	for _, rule := range sheet.Rules {
		declarations := make([]string, 0, len(rule.Declarations))
		for _, d := range rule.Declarations {
			declarations = append(declarations, d.String())
		}
		fmt.Fprintf(w, "%s { %s }\n", rule.Selector, strings.Join(declarations, "; "))
	}
}

// findInputFiles finds the files a mode can process in a directory
func findInputFiles(dir string, m config.Mode) ([]string, error) {
	exts := map[string]bool{".html": true, ".htm": true}
	if m == config.ModeCSS {
		exts = map[string]bool{".css": true}
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && exts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// showProcessingStats displays processing statistics
func showProcessingStats(result *frontend.Result, name string) {
	fmt.Fprintf(os.Stderr, "\nProcessing Statistics for %s:\n", name)
	fmt.Fprintf(os.Stderr, "  HTML tokens: %d\n", result.ProcessingStats.HTMLTokens)
	fmt.Fprintf(os.Stderr, "  Style sheets: %d\n", result.ProcessingStats.StyleSheets)
	fmt.Fprintf(os.Stderr, "  CSS rules parsed: %d\n", result.ProcessingStats.CSSRulesParsed)
	fmt.Fprintf(os.Stderr, "  HTML elements processed: %d\n", result.ProcessingStats.HTMLElementsProcessed)
	fmt.Fprintf(os.Stderr, "  Selectors matched: %d\n", result.ProcessingStats.SelectorsMatched)
	fmt.Fprintf(os.Stderr, "  Processing time: %dms\n", result.ProcessingStats.ProcessingTimeMs)
}
