package commands

import (
	"context"
	"errors"
	"fhirloader-service/internal/app/delivery/cli"
	"fhirloader-service/internal/pkg/constvars"
	"fhirloader-service/internal/pkg/utils"
	"fmt"
	"net/url"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var UploadCmd = &cobra.Command{
	Use:   "upload [directory]",
	Short: "Upload every FHIR bundle in a directory",
	Long: `Upload every *.json transaction bundle found in the target directory, in
lexical filename order, pacing consecutive uploads by the configured delay.

The directory defaults to UPLOADER_BUNDLE_DIR (./processed_fhir). Individual
failures do not abort the run; the command exits nonzero when any bundle
failed to upload.

Examples:
  uploader upload                          # upload from UPLOADER_BUNDLE_DIR
  uploader upload ./processed_fhir         # upload from an explicit directory
  uploader upload --batch-size 25          # progress line every 25 bundles
  uploader upload --delay 0 --skip-check   # no pacing, no connection probe`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

func init() {
	UploadCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "bundles per progress report (overrides UPLOADER_BATCH_SIZE)")
	UploadCmd.Flags().Float64Var(&flagDelay, "delay", -1, "seconds between uploads (overrides UPLOADER_DELAY_SECONDS)")
	UploadCmd.Flags().BoolVar(&flagSkipCheck, "skip-check", false, "skip the connection check before uploading")
	UploadCmd.Flags().BoolVar(&flagNoVerify, "no-verify", false, "skip the patient search probe after uploading")
}

func runUpload(cmd *cobra.Command, args []string) error {
	bootstrap, err := newBootstrap()
	if err != nil {
		return err
	}
	defer bootstrap.ZapLogger.Sync()

	directory := bootstrap.InternalConfig.Uploader.BundleDir
	if len(args) > 0 {
		directory = args[0]
	}

	progress := cli.NewTerminalEmitter()
	uploadUsecase := newUploadUsecase(bootstrap, progress)
	ctx := utils.WithRequestID(cmd.Context(), utils.GenerateRequestID())

	if !flagSkipCheck {
		pterm.Println("Testing FHIR server connection...")
		if err := printConnectionCheck(uploadUsecase.TestConnection(ctx)); err != nil {
			return err
		}
	}

	stats, err := uploadUsecase.UploadDirectory(ctx, directory)
	if err != nil {
		if stats != nil && errors.Is(err, context.Canceled) {
			pterm.Warning.Println("Upload interrupted; totals cover completed attempts only")
			progress.EmitSummary(stats)
		}
		return err
	}

	if !flagNoVerify {
		pterm.Println("\nVerifying upload...")
		params := url.Values{}
		params.Set(constvars.FhirSearchCountParam, constvars.UploaderDefaultVerifyPatientCount)
		search, err := uploadUsecase.SearchPatients(ctx, params)
		if err != nil {
			pterm.Warning.Printf("Verification probe failed: %v\n", err)
		} else {
			pterm.Printf("Total patients on server: %s\n", pterm.Green(fmt.Sprintf("%d", search.Total)))
		}
	}

	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d bundles failed to upload", stats.Failed, stats.Attempted)
	}
	return nil
}
