package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/pkg/client"
	"github.com/aretw0/conform/pkg/document"
	"github.com/aretw0/conform/pkg/schema"
)

// StdinPath names standard input on the command line.
const StdinPath = "-"

// Checker validates one decoded document.
type Checker interface {
	Check(ctx context.Context, subject any) (bool, error)
}

// LocalChecker validates in process, against Node when set and against the
// stored schema Name otherwise.
type LocalChecker struct {
	Engine *conform.Engine
	Node   *schema.Node
	Name   string
}

func (c LocalChecker) Check(ctx context.Context, subject any) (bool, error) {
	if c.Node != nil {
		return c.Engine.Validate(ctx, subject, c.Node), nil
	}
	return c.Engine.ValidateNamed(ctx, c.Name, subject)
}

// RemoteChecker validates through a conform server.
type RemoteChecker struct {
	Client *client.Client
	Node   *schema.Node
	Name   string
}

func (c RemoteChecker) Check(ctx context.Context, subject any) (bool, error) {
	if c.Node != nil {
		return c.Client.Validate(ctx, c.Node, subject)
	}
	return c.Client.ValidateNamed(ctx, c.Name, subject)
}

// Result is the outcome for one document.
type Result struct {
	Path  string
	Index int // zero-based position within a multi-document YAML stream
	Count int // documents in the stream
	Valid bool
	Err   error
}

// Label names the document for output, e.g. "profiles.yaml#2".
func (r Result) Label() string {
	if r.Count > 1 {
		return fmt.Sprintf("%s#%d", r.Path, r.Index+1)
	}
	return r.Path
}

// Failed reports whether the document did not pass.
func (r Result) Failed() bool {
	return r.Err != nil || !r.Valid
}

// ValidateFiles decodes every path and checks each document it holds.
// StdinPath reads from stdin. A format other than FormatAuto overrides the
// file extension.
func ValidateFiles(ctx context.Context, checker Checker, paths []string, format document.Format, stdin io.Reader) []Result {
	var results []Result
	for _, path := range paths {
		docs, err := readDocuments(path, format, stdin)
		if err != nil {
			results = append(results, Result{Path: path, Count: 1, Err: err})
			continue
		}
		for i, doc := range docs {
			valid, err := checker.Check(ctx, doc)
			results = append(results, Result{Path: path, Index: i, Count: len(docs), Valid: valid, Err: err})
		}
	}
	return results
}

// CountFailures returns how many results did not pass.
func CountFailures(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}

func readDocuments(path string, format document.Format, stdin io.Reader) ([]any, error) {
	r := stdin
	if path != StdinPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		defer f.Close()
		r = f

		if format == document.FormatAuto {
			format = document.FormatFromPath(path)
		}
	}

	docs, err := document.DecodeAll(r, format)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found")
	}
	return docs, nil
}
