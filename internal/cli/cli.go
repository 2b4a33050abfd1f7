// Package cli wires resolved configuration into a single API invocation.
package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/clearpass-tools/cpapi/internal/api"
	"github.com/clearpass-tools/cpapi/internal/config"
	"github.com/clearpass-tools/cpapi/internal/params"
	"github.com/clearpass-tools/cpapi/internal/render"
)

// RunOptions carries everything one invocation needs.
type RunOptions struct {
	Method       string
	URL          string
	Params       []string // name=value (body) and name==value (query) tokens
	Config       config.Config
	Unauthorized bool   // skip OAuth2 authorization
	OutputFormat string // json or yaml
	Filter       string // JMESPath expression applied to the result
	NoColor      bool
}

// Run validates the invocation, performs the API call, and prints the result
// to stdout.
func Run(opts RunOptions) error {
	method, err := api.ValidateMethod(opts.Method)
	if err != nil {
		return err
	}
	query, body, err := params.Classify(opts.Params)
	if err != nil {
		return err
	}
	strategy, err := api.SelectStrategy(opts.Config, !opts.Unauthorized)
	if err != nil {
		return err
	}
	client, err := api.NewClient(opts.Config, strategy)
	if err != nil {
		return err
	}

	result, err := client.Invoke(context.Background(), method, opts.URL, query, body)
	if err != nil {
		return err
	}

	return render.Render(os.Stdout, result, render.Options{
		Format: opts.OutputFormat,
		Filter: opts.Filter,
		Color:  !opts.NoColor && isatty.IsTerminal(os.Stdout.Fd()),
	})
}
