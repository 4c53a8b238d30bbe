package resolve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	fcsserrors "github.com/matzehuels/fcss/pkg/errors"
)

// ImportCycleError reports an import path loaded more than once in one
// resolution. Chain is set by [Graph] when a true cycle is found and lists
// the files on the cycle, ending with Path.
type ImportCycleError struct {
	Path  string
	Chain []string
}

func (e *ImportCycleError) Error() string {
	if len(e.Chain) > 0 {
		return "import cycle: " + strings.Join(e.Chain, " -> ")
	}
	return fmt.Sprintf("import %q loaded more than once", e.Path)
}

// Code returns [fcsserrors.ErrCodeImportCycle].
func (e *ImportCycleError) Code() fcsserrors.Code { return fcsserrors.ErrCodeImportCycle }

// ReadError reports an import that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read import %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Code returns [fcsserrors.ErrCodeFileNotFound] for missing files and
// [fcsserrors.ErrCodeIO] otherwise.
func (e *ReadError) Code() fcsserrors.Code {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return fcsserrors.ErrCodeFileNotFound
	}
	return fcsserrors.ErrCodeIO
}

func readError(path string, err error) error {
	var re *ReadError
	if errors.As(err, &re) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ReadError{Path: path, Err: err}
}
