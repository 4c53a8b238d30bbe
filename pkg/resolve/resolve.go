package resolve

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
	"github.com/matzehuels/fcss/pkg/observability"
	"github.com/matzehuels/fcss/pkg/parse"
	"github.com/matzehuels/fcss/pkg/render"
	"github.com/matzehuels/fcss/pkg/sheet"
)

// Resolver inlines imports using a [Reader]. A Resolver holds no state
// between calls and may be shared.
type Resolver struct {
	reader    Reader
	logger    *log.Logger
	maxRounds int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for per-round debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxRounds caps the number of rounds, and so the import nesting depth.
// Zero means no cap beyond the loaded-path rule.
func WithMaxRounds(n int) Option {
	return func(r *Resolver) { r.maxRounds = n }
}

// New creates a Resolver. A nil reader reads from the working directory.
func New(reader Reader, opts ...Option) *Resolver {
	if reader == nil {
		reader = FileReader{}
	}
	r := &Resolver{
		reader: reader,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// File reads and parses the document at path, then resolves it. The root
// path itself is not counted as loaded.
func (r *Resolver) File(ctx context.Context, path string) (sheet.Mapping, error) {
	if err := fcsserrors.ValidateImportPath(path); err != nil {
		return nil, err
	}
	data, err := r.reader.Read(ctx, path)
	if err != nil {
		return nil, readError(path, err)
	}
	tree, err := parse.Document(string(data))
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, tree)
}

// Resolve inlines every import reachable from tree and returns the
// import-free result. The input is not modified. A tree with no top-level
// imports is returned as is.
//
// On failure the returned mapping is the tree as of the last completed
// round, which is the input itself when the first round fails.
func (r *Resolver) Resolve(ctx context.Context, tree sheet.Mapping) (sheet.Mapping, error) {
	start := time.Now()
	loaded := make(map[string]struct{})
	rounds := 0

	current := tree
	var err error
	for current.HasImport() {
		if err = ctx.Err(); err != nil {
			break
		}
		if r.maxRounds > 0 && rounds >= r.maxRounds {
			err = fcsserrors.New(fcsserrors.ErrCodeInvalidInput, "imports nested deeper than %d levels", r.maxRounds)
			break
		}
		rounds++

		var next sheet.Mapping
		next, err = r.round(ctx, current, loaded, rounds)
		if err != nil {
			break
		}
		current = next
	}

	observability.Resolve().OnComplete(ctx, rounds, len(loaded), time.Since(start), err)
	if err != nil {
		r.logger.Debug("resolve failed", "rounds", rounds, "loaded", len(loaded), "err", err)
		return current, err
	}
	if rounds > 0 {
		r.logger.Debug("resolved imports", "rounds", rounds, "loaded", len(loaded), "elapsed", time.Since(start))
	}
	return current, nil
}

// round reads every top-level import of tree, in sorted path order, and
// re-parses their contents followed by the rest of the tree.
func (r *Resolver) round(ctx context.Context, tree sheet.Mapping, loaded map[string]struct{}, n int) (sheet.Mapping, error) {
	paths := tree.Imports()
	observability.Resolve().OnRound(ctx, n, len(paths))
	r.logger.Debug("resolve round", "round", n, "imports", paths)

	var imported strings.Builder
	for _, path := range paths {
		imp := tree[path].(sheet.Import)
		if _, seen := loaded[path]; seen || imp.Count > 1 {
			return nil, &ImportCycleError{Path: path}
		}
		if err := fcsserrors.ValidateImportPath(path); err != nil {
			return nil, err
		}

		data, err := r.reader.Read(ctx, path)
		if err != nil {
			return nil, readError(path, err)
		}
		loaded[path] = struct{}{}
		observability.Resolve().OnImportLoaded(ctx, path, len(data))
		r.logger.Debug("import loaded", "path", path, "bytes", len(data))

		imported.Write(data)
		imported.WriteByte('\n')
	}

	text := imported.String() + Flatten(tree)
	if strings.TrimSpace(text) == "" {
		return sheet.Mapping{}, nil
	}
	return parse.Document(text)
}

// Flatten renders the non-import children of tree as reg text, the form in
// which already-resolved content is carried into the next round.
func Flatten(tree sheet.Mapping) string {
	body := make(sheet.Mapping, len(tree))
	for k, n := range tree {
		if _, ok := n.(sheet.Import); !ok {
			body[k] = n
		}
	}
	return render.Sheet(body)
}
