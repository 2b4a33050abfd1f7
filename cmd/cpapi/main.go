package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearpass-tools/cpapi/internal/apperror"
	"github.com/clearpass-tools/cpapi/internal/cli"
	"github.com/clearpass-tools/cpapi/internal/config"
)

var version = "1.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		var cfgErr *apperror.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "ERROR: Configuration error: %s\n", cfgErr.Message)
			return 3
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "cpapi [options] METHOD URL [PARAMS...]",
	Short: "ClearPass REST API client",
	Long: `cpapi calls a single ClearPass REST API specified by METHOD and URL and
prints the JSON result.

PARAMS may be expressed as:
  * name=value     for JSON body parameters (POST, PATCH, PUT)
  * name==value    for query string parameters (GET)

Authorization requires ONE of the following:
  * --access-token (if you already performed OAuth2 authentication)
  * --client-id, --client-secret (for grant_type=client_credentials)
  * --client-id, --username, --password (for grant_type=password, public client)
  * --client-id, --client-secret, --username, --password (for grant_type=password)

Most options can be stored in environment variables; use _ in place of -.

Examples:
  # Get an access_token
  cpapi --host clearpass.example.com -z POST /oauth grant_type=client_credentials client_id=Client1 client_secret=ClientSecret

  # Create a guest account; show full request/response
  export host=clearpass.example.com
  export access_token=...
  cpapi -v POST /guest username=demo@example.com password=123456 role_id=2 visitor_name='Demo User'

  # Lookup a guest account by ID
  cpapi get /guest/3001

  # Modify a guest account
  cpapi patch /guest/3001 password=654321`,
	Version:       version,
	Args:          cobra.MinimumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Run(cli.RunOptions{
			Method:       args[0],
			URL:          args[1],
			Params:       args[2:],
			Config:       config.Resolve(cmd.Flags()),
			Unauthorized: flagUnauthorized,
			OutputFormat: flagOutput,
			Filter:       flagFilter,
			NoColor:      flagNoColor,
		})
	},
}

// Flags without environment fallbacks; the rest are read through
// config.Resolve.
var (
	flagUnauthorized bool
	flagOutput       string
	flagFilter       string
	flagNoColor      bool
)

func init() {
	flags := rootCmd.Flags()
	flags.StringP("host", "h", "", "ClearPass server hostname")
	flags.BoolP("insecure", "k", false, "Allow insecure SSL certificate checks")
	flags.String("access-token", "", "Use TOKEN as the OAuth2 Bearer access_token")
	flags.String("client-id", "", "OAuth2 client identifier")
	flags.String("client-secret", "", "OAuth2 client secret")
	flags.String("username", "", "OAuth2 username, for grant_type password")
	flags.String("password", "", "OAuth2 password, for grant_type password")
	flags.BoolVarP(&flagUnauthorized, "unauthorized", "z", false, "Skip OAuth2 authorization (only useful for /oauth)")
	flags.BoolP("verbose", "v", false, "Print HTTP request and response traffic")
	flags.Bool("debug", false, "Print connection traces")
	flags.StringVarP(&flagOutput, "output", "o", "json", "Output format (json/yaml)")
	flags.StringVar(&flagFilter, "filter", "", "JMESPath expression applied to the result")
	flags.BoolVar(&flagNoColor, "no-color", false, "Disable colorized output")

	// -h is taken by --host, so register the help flag with -? ourselves
	// before cobra installs its default.
	flags.BoolP("help", "?", false, "Show this screen")
}
