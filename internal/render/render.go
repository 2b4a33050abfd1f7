// Package render formats decoded API results for the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/jmespath/go-jmespath"
	"gopkg.in/yaml.v3"

	"github.com/clearpass-tools/cpapi/internal/apperror"
)

// Options control result rendering.
type Options struct {
	Format string // json (default) or yaml
	Filter string // optional JMESPath expression
	Color  bool   // syntax-highlight output (TTY only)
}

// Render writes the result to w: optionally narrowed by a JMESPath filter,
// then pretty-printed (4-space indent, keys sorted) with a trailing blank
// line.
func Render(w io.Writer, result any, opts Options) error {
	if opts.Filter != "" {
		jp, err := jmespath.Compile(opts.Filter)
		if err != nil {
			return apperror.ConfigErrorf("Invalid JMESPath filter %q: %v", opts.Filter, err)
		}
		result, err = jp.Search(result)
		if err != nil {
			return fmt.Errorf("failed to apply filter: %w", err)
		}
	}

	switch opts.Format {
	case "", "json":
		return renderJSON(w, result, opts.Color)
	case "yaml":
		return renderYAML(w, result)
	default:
		return apperror.ConfigErrorf("Invalid output format: %s", opts.Format)
	}
}

func renderJSON(w io.Writer, result any, color bool) error {
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if color {
		if err := quick.Highlight(w, string(data), "json", "terminal256", "monokai"); err == nil {
			_, err = fmt.Fprint(w, "\n\n")
			return err
		}
		// fall through to plain output if highlighting fails
	}
	_, err = fmt.Fprintf(w, "%s\n\n", data)
	return err
}

func renderYAML(w io.Writer, result any) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
