package commands

import (
	"fhirloader-service/internal/app/delivery/cli"
	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/utils"
	"fmt"
	"net/url"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var SearchCmd = &cobra.Command{
	Use:   "search [param=value ...]",
	Short: "Search Patient resources on the FHIR server",
	Long: `Search the Patient endpoint with FHIR search parameters given as
key=value pairs. A _count parameter is added when absent.

Examples:
  uploader search                # first page of patients
  uploader search family=Smith   # filter by family name
  uploader search _count=50      # larger page`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	bootstrap, err := newBootstrap()
	if err != nil {
		return err
	}
	defer bootstrap.ZapLogger.Sync()

	params := url.Values{}
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid search parameter %q, expected key=value", arg)
		}
		params.Add(key, value)
	}
	if params.Get(constvars.FhirSearchCountParam) == "" {
		params.Set(constvars.FhirSearchCountParam, constvars.UploaderDefaultVerifyPatientCount)
	}

	uploadUsecase := newUploadUsecase(bootstrap, cli.NewTerminalEmitter())
	ctx := utils.WithRequestID(cmd.Context(), utils.GenerateRequestID())

	search, err := uploadUsecase.SearchPatients(ctx, params)
	if err != nil {
		return err
	}

	pterm.Printf("Total patients on server: %s\n", pterm.Green(fmt.Sprintf("%d", search.Total)))
	pterm.Printf("Returned in this page: %d\n", search.Returned)
	return nil
}
