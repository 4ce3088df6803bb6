package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	flagHostname     string
	flagClientID     string
	flagClientSecret string
	flagPlain        bool

	flagBatchSize int
	flagDelay     float64
	flagSkipCheck bool
	flagNoVerify  bool
)

var rootCmd = &cobra.Command{
	Use:   "uploader",
	Short: "Upload FHIR transaction bundles to a FHIR R4 server",
	Long: `uploader pushes pre-built FHIR R4 transaction bundles to a FHIR server
protected by Cloudflare Access service tokens.

Server coordinates come from the environment (FHIR_HOSTNAME, FHIR_CLIENT_ID,
FHIR_CLIENT_SECRET), from a .env file in the working directory, or from the
flags below.

Examples:
  uploader check                     # probe the /metadata endpoint
  uploader upload ./processed_fhir   # upload every *.json bundle in a directory
  uploader search family=Smith       # search Patient resources
  uploader version                   # show build information`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagHostname, "hostname", "", "FHIR server hostname (overrides FHIR_HOSTNAME)")
	rootCmd.PersistentFlags().StringVar(&flagClientID, "client-id", "", "Cloudflare Access client id (overrides FHIR_CLIENT_ID)")
	rootCmd.PersistentFlags().StringVar(&flagClientSecret, "client-secret", "", "Cloudflare Access client secret (overrides FHIR_CLIENT_SECRET)")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "disable colored output")

	rootCmd.AddCommand(UploadCmd)
	rootCmd.AddCommand(CheckCmd)
	rootCmd.AddCommand(SearchCmd)
	rootCmd.AddCommand(VersionCmd)
}

// Execute runs the root command; canceling ctx aborts in-flight work.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
