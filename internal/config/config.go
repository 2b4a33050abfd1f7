// Package config resolves invocation options from command-line flags with
// environment-variable fallbacks.
package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Config is the fully resolved invocation configuration. It is built once per
// run and never mutated afterwards.
type Config struct {
	Host     string
	Insecure bool
	Verbose  bool
	Debug    bool

	AccessToken  string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

// truthy is the set of environment values that switch a boolean option on.
// Matching is case-sensitive.
var truthy = map[string]bool{"1": true, "true": true, "on": true, "yes": true}

// A Resolver computes effective option values: an explicit flag value wins,
// otherwise the environment variable named after the flag (dashes replaced by
// underscores) supplies a fallback.
type Resolver struct {
	flags  *pflag.FlagSet
	getenv func(string) string
}

// NewResolver wraps a parsed flag set.
func NewResolver(flags *pflag.FlagSet) *Resolver {
	return &Resolver{flags: flags, getenv: os.Getenv}
}

// String resolves a string option. An empty flag value falls through to the
// environment.
func (r *Resolver) String(name string) string {
	if v, err := r.flags.GetString(name); err == nil && v != "" {
		return v
	}
	return r.getenv(EnvName(name))
}

// Bool resolves a boolean option, coercing environment values with the truthy
// set.
func (r *Resolver) Bool(name string) bool {
	if v, err := r.flags.GetBool(name); err == nil && v {
		return true
	}
	return truthy[r.getenv(EnvName(name))]
}

// EnvName maps a flag name to its environment-variable fallback.
func EnvName(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// Resolve merges the given flag set with environment fallbacks into a Config.
func Resolve(flags *pflag.FlagSet) Config {
	r := NewResolver(flags)
	return Config{
		Host:         r.String("host"),
		Insecure:     r.Bool("insecure"),
		Verbose:      r.Bool("verbose"),
		Debug:        r.Bool("debug"),
		AccessToken:  r.String("access-token"),
		ClientID:     r.String("client-id"),
		ClientSecret: r.String("client-secret"),
		Username:     r.String("username"),
		Password:     r.String("password"),
	}
}
