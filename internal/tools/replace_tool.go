package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kvit-s/patchtool/internal/config"
)

// ReplaceRequest is the validated, typed form of the tool arguments.
// Defaults are applied explicitly during binding, never hidden in
// deserialization.
type ReplaceRequest struct {
	Path            string
	Original        string
	Replacement     string
	UseRegex        bool
	CaseSensitive   bool
	MaxReplacements int // -1 = unlimited, 0 = find but replace none
	Encoding        string
	Preview         bool
	PreviewLines    int
	RawOutput       bool
	Backup          bool
}

// Validate checks the request before any I/O is attempted
func (req *ReplaceRequest) Validate() error {
	if req.Path == "" {
		return ValidationErrorf("path is required")
	}
	if req.Original == "" {
		return ValidationErrorf("original is required and must be non-empty")
	}
	if req.MaxReplacements < -1 {
		return ValidationErrorf("maxReplacements must be -1 (unlimited) or >= 0, got %d", req.MaxReplacements)
	}
	if req.PreviewLines < 0 {
		return ValidationErrorf("previewLines must be >= 0, got %d", req.PreviewLines)
	}
	return nil
}

// ReplaceOutcome reports what a replace invocation did, or in preview mode
// would do. All fields are computed fresh per invocation.
type ReplaceOutcome struct {
	Path               string
	OccurrencesFound   int
	OccurrencesApplied int
	ContentChanged     bool
	BackupPath         string
	NewContent         string         // not materialized in preview mode
	PreviewGroups      []PreviewGroup // full group list; rendering truncates
	Diff               string         // unified diff, preview mode only
}

// replaceParams mirrors the JSON argument object. Optional fields whose zero
// value is a meaningful choice are pointers so absence is distinguishable.
type replaceParams struct {
	Path            string `json:"path"`
	Original        string `json:"original"`
	Replacement     string `json:"replacement"`
	UseRegex        bool   `json:"useRegex"`
	CaseSensitive   *bool  `json:"caseSensitive"`
	MaxReplacements *int   `json:"maxReplacements"`
	Encoding        string `json:"encoding"`
	Preview         bool   `json:"preview"`
	PreviewLines    *int   `json:"previewLines"`
	RawOutput       bool   `json:"rawOutput"`
	Backup          *bool  `json:"backup"`
}

// ReplaceTool applies bounded search/replace edits to a single file
type ReplaceTool struct {
	Config        *config.Config
	WorkspaceRoot string
}

// NewReplaceTool creates a new ReplaceTool
func NewReplaceTool(cfg *config.Config) *ReplaceTool {
	return &ReplaceTool{
		Config:        cfg,
		WorkspaceRoot: cfg.Workspace.Root,
	}
}

func (t *ReplaceTool) Name() string {
	return "Replace"
}

func (t *ReplaceTool) Description() string {
	return "Replace occurrences of a literal string or regular expression in a file, bounded to at most N replacements, with optional preview and backup."
}

func (t *ReplaceTool) Category() string { return "filesystem" }
func (t *ReplaceTool) Order() int       { return 10 }

func (t *ReplaceTool) JSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "Path to an existing file (relative to workspace or absolute)",
			},
			"original": map[string]any{
				"type":        "string",
				"description": "Text to find. A literal string by default, a regular expression when useRegex is true. Must be non-empty.",
			},
			"replacement": map[string]any{
				"type":        "string",
				"description": "Replacement text. Empty string deletes the matched text. In regex mode $1..$N expand to captured groups.",
			},
			"useRegex": map[string]any{
				"type":        "boolean",
				"description": "Treat original as a regular expression. ^ and $ match at line boundaries. Default false.",
			},
			"caseSensitive": map[string]any{
				"type":        "boolean",
				"description": "Match case exactly. Default true.",
			},
			"maxReplacements": map[string]any{
				"type":        "integer",
				"description": "Replace at most this many occurrences, left to right. -1 (default) means unlimited; 0 finds but replaces nothing.",
			},
			"encoding": map[string]any{
				"type":        "string",
				"description": "File encoding name (utf-8, utf-16, ascii, latin-1, ...). Default utf-8.",
			},
			"preview": map[string]any{
				"type":        "boolean",
				"description": "Report would-be changes without writing the file. Default false.",
			},
			"previewLines": map[string]any{
				"type":        "integer",
				"description": "Number of change groups to render in preview mode. Default 3.",
			},
			"rawOutput": map[string]any{
				"type":        "boolean",
				"description": "Return a single human-readable SUCCESS/FAILED line instead of a structured report. Default false.",
			},
			"backup": map[string]any{
				"type":        "boolean",
				"description": "Write the original content to <path>.bak before overwriting. Default true.",
			},
		},
		"required": []string{"path", "original"},
	}
}

// bindRequest parses the JSON arguments into a typed request with explicit
// defaults, then validates it.
func (t *ReplaceTool) bindRequest(args json.RawMessage) (*ReplaceRequest, error) {
	var params replaceParams
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, SemanticErrorf("invalid arguments: %v", err)
	}

	req := &ReplaceRequest{
		Path:            params.Path,
		Original:        params.Original,
		Replacement:     params.Replacement,
		UseRegex:        params.UseRegex,
		CaseSensitive:   true,
		MaxReplacements: -1,
		Encoding:        params.Encoding,
		Preview:         params.Preview,
		PreviewLines:    t.Config.Tools.Replace.PreviewLines,
		RawOutput:       params.RawOutput,
		Backup:          t.Config.BackupEnabled(),
	}
	if params.CaseSensitive != nil {
		req.CaseSensitive = *params.CaseSensitive
	}
	if params.MaxReplacements != nil {
		req.MaxReplacements = *params.MaxReplacements
	}
	if params.PreviewLines != nil {
		req.PreviewLines = *params.PreviewLines
	}
	if params.Backup != nil {
		req.Backup = *params.Backup
	}
	if req.Encoding == "" {
		req.Encoding = t.Config.Tools.Replace.DefaultEncoding
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func (t *ReplaceTool) Check(ctx context.Context, args json.RawMessage) error {
	_, err := t.bindRequest(args)
	return err
}

// Call runs the full sequence: resolve encoding, read, match, then either
// build a preview report or replace, back up, and write. Every failure is
// returned as a formatted result so callers always get a description rather
// than a fault; only malformed argument JSON surfaces as an error.
func (t *ReplaceTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	req, err := t.bindRequest(args)
	if err != nil {
		if IsKind(err, ErrSemantic) {
			return nil, err
		}
		// honor the requested output mode even for binding failures
		var params replaceParams
		_ = json.Unmarshal(args, &params)
		return t.formatFailure(err, params.RawOutput, params.Preview), nil
	}

	outcome, runErr := t.run(req)
	if runErr != nil {
		return t.formatFailure(runErr, req.RawOutput, req.Preview), nil
	}
	return t.formatOutcome(req, outcome), nil
}

// run executes the orchestration state machine for a validated request
func (t *ReplaceTool) run(req *ReplaceRequest) (*ReplaceOutcome, error) {
	enc, err := ResolveEncoding(req.Encoding)
	if err != nil {
		return nil, err
	}

	fullPath, outside, err := ResolvePath(t.WorkspaceRoot, req.Path)
	if err != nil {
		return nil, IOErrorf("invalid path: %v", err)
	}
	if outside && !t.Config.Workspace.AllowOutsideWorkspace {
		return nil, ValidationErrorf("path is outside the workspace: %s", req.Path)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, IOErrorf("file not found: %s", req.Path)
		}
		return nil, IOErrorf("stat file: %v", err)
	}
	if info.IsDir() {
		return nil, IOErrorf("path is a directory: %s", req.Path)
	}
	if maxKB := t.Config.Tools.Replace.MaxFileSizeKB; maxKB > 0 && info.Size() > int64(maxKB)*1024 {
		return nil, IOErrorf("file exceeds %d KB limit: %s", maxKB, req.Path)
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, IOErrorf("read file: %v", err)
	}
	content, err := DecodeBytes(enc, raw)
	if err != nil {
		return nil, err
	}

	matcher, err := NewMatcher(req.Original, req.UseRegex, req.CaseSensitive)
	if err != nil {
		return nil, err
	}
	occs := matcher.Find(content)

	outcome := &ReplaceOutcome{
		Path:             req.Path,
		OccurrencesFound: len(occs),
	}

	if req.Preview {
		// Preview renders the full unbounded effect; the cap still shows
		// in the would-be applied count.
		outcome.OccurrencesApplied = boundedCount(len(occs), req.MaxReplacements)
		outcome.PreviewGroups = matcher.BuildPreviewGroups(content, occs, req.Replacement)

		newContent, _ := matcher.ApplyReplacements(content, occs, req.Replacement, -1)
		diff, diffErr := UnifiedDiff(content, newContent, req.Path)
		if diffErr != nil {
			return nil, IOErrorf("generate diff: %v", diffErr)
		}
		outcome.Diff = diff
		return outcome, nil
	}

	newContent, applied := matcher.ApplyReplacements(content, occs, req.Replacement, req.MaxReplacements)
	outcome.OccurrencesApplied = applied
	outcome.ContentChanged = applied > 0 && newContent != content
	outcome.NewContent = newContent

	if !outcome.ContentChanged {
		// no-op outcome: no backup, no write
		return outcome, nil
	}

	encoded, err := EncodeText(enc, newContent)
	if err != nil {
		return nil, err
	}

	if req.Backup {
		backupPath := fullPath + ".bak"
		if err := os.WriteFile(backupPath, raw, info.Mode().Perm()); err != nil {
			// a failed backup aborts before the target is touched
			return nil, IOErrorf("write backup: %v", err)
		}
		outcome.BackupPath = backupPath
	}

	if err := writeFileAtomic(fullPath, encoded, info.Mode()); err != nil {
		return nil, IOErrorf("write file: %v", err)
	}
	return outcome, nil
}

// boundedCount returns min(found, max), treating a negative max as unlimited
func boundedCount(found, max int) int {
	if max < 0 || max > found {
		return found
	}
	return max
}

// writeFileAtomic writes data via a temp file and rename so a failed write
// never leaves a truncated target behind
func writeFileAtomic(fullPath string, data []byte, mode os.FileMode) error {
	tempFile, err := os.CreateTemp(filepath.Dir(fullPath), ".replace-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up temp file in case of error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	_ = os.Chmod(tempPath, mode)

	if err := os.Rename(tempPath, fullPath); err != nil {
		return fmt.Errorf("atomic rename failed: %w", err)
	}
	return nil
}

// formatOutcome renders the outcome in the requested output mode
func (t *ReplaceTool) formatOutcome(req *ReplaceRequest, outcome *ReplaceOutcome) any {
	if req.RawOutput {
		return t.formatRaw(req, outcome)
	}
	return t.formatStructured(req, outcome)
}

func (t *ReplaceTool) formatStructured(req *ReplaceRequest, outcome *ReplaceOutcome) map[string]any {
	result := map[string]any{
		"status":             "SUCCESS",
		"path":               outcome.Path,
		"occurrencesFound":   outcome.OccurrencesFound,
		"occurrencesApplied": outcome.OccurrencesApplied,
		"contentChanged":     outcome.ContentChanged,
	}
	if outcome.BackupPath != "" {
		result["backupPath"] = outcome.BackupPath
	}
	if req.Preview {
		shown := outcome.PreviewGroups
		if len(shown) > req.PreviewLines {
			shown = shown[:req.PreviewLines]
		}
		if shown == nil {
			shown = []PreviewGroup{}
		}
		result["previewMode"] = true
		result["previewDiff"] = shown
		result["totalGroups"] = len(outcome.PreviewGroups)
		result["diff"] = outcome.Diff
	}
	return result
}

func (t *ReplaceTool) formatRaw(req *ReplaceRequest, outcome *ReplaceOutcome) string {
	if !req.Preview {
		if outcome.OccurrencesFound == 0 {
			return fmt.Sprintf("SUCCESS: no occurrences of %q found in %s; file unchanged", req.Original, outcome.Path)
		}
		msg := fmt.Sprintf("SUCCESS: replaced %d of %d occurrence(s) in %s", outcome.OccurrencesApplied, outcome.OccurrencesFound, outcome.Path)
		if !outcome.ContentChanged {
			if outcome.OccurrencesApplied > 0 {
				msg = fmt.Sprintf("SUCCESS: replaced %d of %d occurrence(s) in %s; content identical, file unchanged",
					outcome.OccurrencesApplied, outcome.OccurrencesFound, outcome.Path)
			} else {
				msg = fmt.Sprintf("SUCCESS: found %d occurrence(s) in %s; nothing replaced, file unchanged", outcome.OccurrencesFound, outcome.Path)
			}
		}
		if outcome.BackupPath != "" {
			msg += fmt.Sprintf(" (backup: %s)", outcome.BackupPath)
		}
		return msg
	}

	var sb strings.Builder
	sb.WriteString("PREVIEW MODE - no changes written\n")
	sb.WriteString(fmt.Sprintf("SUCCESS: %d occurrence(s) found in %s, %d would be replaced\n",
		outcome.OccurrencesFound, outcome.Path, outcome.OccurrencesApplied))
	sb.WriteString("Changes:\n")

	shown := outcome.PreviewGroups
	if len(shown) > req.PreviewLines {
		shown = shown[:req.PreviewLines]
	}
	for _, g := range shown {
		if g.StartLine == g.EndLine {
			sb.WriteString(fmt.Sprintf("line %d:\n", g.StartLine))
		} else {
			sb.WriteString(fmt.Sprintf("lines %d-%d:\n", g.StartLine, g.EndLine))
		}
		for _, line := range strings.Split(g.Before, "\n") {
			sb.WriteString("- " + line + "\n")
		}
		for _, line := range strings.Split(g.After, "\n") {
			sb.WriteString("+ " + line + "\n")
		}
	}
	if hidden := len(outcome.PreviewGroups) - len(shown); hidden > 0 {
		sb.WriteString(fmt.Sprintf("... %d more change group(s) not shown (of %d total)\n", hidden, len(outcome.PreviewGroups)))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// formatFailure renders a failure description in the requested output mode
func (t *ReplaceTool) formatFailure(err error, rawOutput, preview bool) any {
	te := WrapAsIO(err)
	if rawOutput {
		msg := "FAILED: " + te.Message
		if preview {
			msg = "PREVIEW MODE - no changes written\n" + msg
		}
		return msg
	}
	result := te.ToJSON()
	if preview {
		result["previewMode"] = true
	}
	return result
}
