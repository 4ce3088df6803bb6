package commands

import (
	"fhirloader-service/internal/app/delivery/cli"
	"fhirloader-service/internal/pkg/utils"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the FHIR server metadata endpoint",
	Long: `Fetch the FHIR server capability statement (GET /metadata) using the
configured Cloudflare Access credentials and report the server software
name, version, and FHIR release.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	bootstrap, err := newBootstrap()
	if err != nil {
		return err
	}
	defer bootstrap.ZapLogger.Sync()

	uploadUsecase := newUploadUsecase(bootstrap, cli.NewTerminalEmitter())
	ctx := utils.WithRequestID(cmd.Context(), utils.GenerateRequestID())

	pterm.Println("Testing FHIR server connection...")
	return printConnectionCheck(uploadUsecase.TestConnection(ctx))
}
