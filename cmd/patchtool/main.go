package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/kvit-s/patchtool/internal/config"
	"github.com/kvit-s/patchtool/internal/logging"
	"github.com/kvit-s/patchtool/internal/tools"
	"github.com/kvit-s/patchtool/internal/ui"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	buildDate  = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	logFile := flag.String("log", "", "log file path (overrides config, empty keeps config value)")
	request := flag.String("request", "", "full request as JSON; @file reads from a file, - reads stdin")
	showVersion := flag.Bool("version", false, "show version information and exit")
	listTools := flag.Bool("list", false, "list available tools and exit")
	confirm := flag.Bool("confirm", false, "show a preview and ask before applying")

	path := flag.String("path", "", "file to edit")
	original := flag.String("original", "", "text or pattern to find")
	replacement := flag.String("replacement", "", "replacement text (empty deletes matches)")
	useRegex := flag.Bool("regex", false, "treat the pattern as a regular expression")
	ignoreCase := flag.Bool("ignore-case", false, "match case-insensitively")
	maxReplacements := flag.Int("max", -1, "maximum replacements (-1 = unlimited)")
	encodingName := flag.String("encoding", "", "file encoding (default utf-8)")
	preview := flag.Bool("preview", false, "report changes without writing")
	previewLines := flag.Int("preview-lines", 0, "change groups to render in preview")
	rawOutput := flag.Bool("raw", false, "single-line SUCCESS/FAILED output")
	noBackup := flag.Bool("no-backup", false, "skip the .bak backup before overwriting")

	flag.Parse()

	if *showVersion {
		fmt.Printf("patchtool %s (%s, built %s)\n", version, commitHash, buildDate)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *logFile != "" {
		cfg.Log.Path = *logFile
	}

	logger, err := logging.NewLogger(cfg.Log.Path, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Close()

	registry := tools.NewRegistry()
	registry.Enable(tools.NewReplaceTool(cfg))

	if *listTools {
		for _, t := range registry.All() {
			fmt.Printf("%-10s %s\n", t.Name(), t.Description())
		}
		return
	}

	// Track which flags were set explicitly so tool defaults still apply
	// for everything else.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var args json.RawMessage
	if *request != "" {
		args, err = readRequest(*request)
		if err != nil {
			log.Fatalf("Failed to read request: %v", err)
		}
	} else {
		m := map[string]any{
			"path":     *path,
			"original": *original,
		}
		if set["replacement"] {
			m["replacement"] = *replacement
		}
		if set["regex"] {
			m["useRegex"] = *useRegex
		}
		if set["ignore-case"] {
			m["caseSensitive"] = !*ignoreCase
		}
		if set["max"] {
			m["maxReplacements"] = *maxReplacements
		}
		if set["encoding"] {
			m["encoding"] = *encodingName
		}
		if set["preview"] {
			m["preview"] = *preview
		}
		if set["preview-lines"] {
			m["previewLines"] = *previewLines
		}
		if set["raw"] {
			m["rawOutput"] = *rawOutput
		}
		if set["no-backup"] {
			m["backup"] = !*noBackup
		}
		args, err = json.Marshal(m)
		if err != nil {
			log.Fatalf("Failed to build request: %v", err)
		}
	}

	ctx := context.Background()
	tool := registry.Get("Replace")
	writer := ui.NewWriter(os.Stdout)

	if err := tool.Check(ctx, args); err != nil {
		logger.Error("check failed", err)
		fmt.Fprintln(os.Stderr, tools.FormatError(err))
		os.Exit(1)
	}

	if *confirm && !*preview {
		if !confirmPreview(ctx, tool, args, logger) {
			return
		}
	}

	start := time.Now()
	result, callErr := tool.Call(ctx, args)
	logger.ToolExecuted(tool.Name(), time.Since(start), callErr == nil, callErr)
	if callErr != nil {
		fmt.Fprintln(os.Stderr, tools.FormatError(callErr))
		os.Exit(1)
	}

	if m, ok := result.(map[string]any); ok {
		if changed, _ := m["contentChanged"].(bool); changed {
			backup, _ := m["backupPath"].(string)
			applied, _ := m["occurrencesApplied"].(int)
			logger.FileWritten(fmt.Sprint(m["path"]), backup, applied)
		}
	}

	if !writer.PrintResult(result) {
		os.Exit(1)
	}
}

// confirmPreview runs the request in preview mode, renders the change
// groups, and asks whether to proceed.
func confirmPreview(ctx context.Context, tool tools.Tool, args json.RawMessage, logger *logging.Logger) bool {
	var m map[string]any
	if err := json.Unmarshal(args, &m); err != nil {
		return true // let the real call surface the problem
	}
	m["preview"] = true
	m["rawOutput"] = false
	previewArgs, err := json.Marshal(m)
	if err != nil {
		return true
	}

	result, err := tool.Call(ctx, previewArgs)
	if err != nil {
		logger.Error("preview failed", err)
		fmt.Fprintln(os.Stderr, tools.FormatError(err))
		return false
	}
	report, ok := result.(map[string]any)
	if !ok || report["status"] != "SUCCESS" {
		ui.NewWriter(os.Stderr).PrintResult(result)
		return false
	}

	groups, _ := report["previewDiff"].([]tools.PreviewGroup)
	total, _ := report["totalGroups"].(int)
	if total == 0 {
		fmt.Println("No occurrences found; nothing to apply.")
		return false
	}
	fmt.Print(ui.RenderPreviewGroups(groups, total))

	if !ui.Confirm("Apply these changes?", os.Stdin, os.Stdout) {
		fmt.Println("Aborted.")
		return false
	}
	return true
}

// readRequest resolves the -request flag value into raw JSON
func readRequest(request string) (json.RawMessage, error) {
	switch {
	case request == "-":
		return io.ReadAll(os.Stdin)
	case strings.HasPrefix(request, "@"):
		return os.ReadFile(request[1:])
	default:
		return json.RawMessage(request), nil
	}
}
