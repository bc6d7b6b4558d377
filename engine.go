package dap

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ErrPreflightFailed marks a run aborted before any mutation because at
// least one edit failed validation.
var ErrPreflightFailed = errors.New("preflight checks failed")

type Config struct {
	PatchFile string
	DryRun    bool
}

// App wires the full pipeline: source, markdown unwrapping, dialect
// detection, parsing, preflight, apply, summary.
type App struct {
	cfg      *Config
	resolver *PathResolver
	source   *SourceProvider
	out      io.Writer
	log      zerolog.Logger
}

func NewApp(cfg *Config) (*App, error) {
	resolver, err := NewPathResolver()
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		resolver: resolver,
		source:   NewSourceProvider(cfg.PatchFile),
		out:      os.Stdout,
		log:      GetLogger("engine"),
	}, nil
}

// SetOutput redirects the user-facing checklist, used by tests.
func (a *App) SetOutput(w io.Writer) { a.out = w }

func (a *App) Execute() (Summary, error) {
	content, err := a.source.GetContent()
	if err != nil {
		return Summary{}, err
	}
	if content == "" {
		return Summary{Message: "No valid patch blocks found in the input."}, nil
	}
	return a.run(content)
}

func (a *App) run(content string) (Summary, error) {
	content = UnwrapMarkdown(content)

	dialect := Detect(content)
	fmt.Fprintf(a.out, "Detected format: %s\n", dialect)
	a.log.Info().Stringer("dialect", dialect).Msg("Dialect selected")

	edits := Parse(content)
	if len(edits) == 0 {
		return Summary{Message: "No valid patch blocks found in the input."}, nil
	}

	fmt.Fprintln(a.out, "--- Running Preflight Checks ---")
	ok, checks := Preflight(a.resolver, edits)
	for _, check := range checks {
		fmt.Fprint(a.out, formatPreflightResult(check))
	}
	if !ok {
		fmt.Fprintln(a.out, "\nAborting. No files were modified.")
		return Summary{}, ErrPreflightFailed
	}

	fmt.Fprintln(a.out, "\n--- Preflight Checks Passed. Proceeding with patching. ---")

	results := ApplyAll(a.resolver, edits, a.cfg.DryRun, func(edit Edit, result ApplyResult) {
		fmt.Fprintf(a.out, "--- Applying patch to: %s\n", edit.Path)
		fmt.Fprint(a.out, formatApplyResult(result))
	})

	summary := Summary{Total: len(edits)}
	for _, r := range results {
		if r.OK {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	if !a.cfg.DryRun && summary.Succeeded > 0 {
		notifier := NewEditorNotifier()
		defer notifier.Close()
		notifier.Refresh(touchedPaths(a.resolver, edits, results))
	}

	if summary.Failed > 0 {
		return summary, fmt.Errorf("%d patch(es) failed to apply", summary.Failed)
	}
	return summary, nil
}

// Apply is the library entry point: parse content, validate it against the
// filesystem, and apply it in one call.
func Apply(content string, dryRun bool) (Summary, error) {
	app, err := NewApp(&Config{DryRun: dryRun})
	if err != nil {
		return Summary{}, err
	}
	app.out = io.Discard
	return app.run(content)
}
