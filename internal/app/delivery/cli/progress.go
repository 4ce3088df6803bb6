package cli

import (
	"fmt"
	"sort"
	"strings"

	"fhirloader-service/internal/app/contracts"
	"fhirloader-service/internal/pkg/dto/responses"

	"github.com/pterm/pterm"
)

const separatorWidth = 70

// TerminalEmitter renders upload progress as pretty-printed terminal output
// using pterm. It writes to stdout; all structured logging stays on stderr so
// the two streams can be separated.
type TerminalEmitter struct{}

func NewTerminalEmitter() contracts.ProgressEmitter {
	return &TerminalEmitter{}
}

func (e *TerminalEmitter) EmitRunStart(total int, directory string) {
	pterm.Printf("\nUploading %s bundles from %s\n", pterm.LightCyan(fmt.Sprintf("%d", total)), directory)
	pterm.Println(strings.Repeat("=", separatorWidth))
}

func (e *TerminalEmitter) EmitFileStart(index, total int, file string) {
	pterm.Printf("[%d/%d] Uploading %s... ", index, total, file)
}

func (e *TerminalEmitter) EmitFileResult(index, total int, result *responses.UploadResult) {
	if result.Success {
		pterm.Println(pterm.Green("✓"))
		return
	}
	pterm.Println(pterm.Red("✗"))
	if result.ErrorMessage != "" {
		pterm.Printf("  %s: %s\n", result.ErrorKind, result.ErrorMessage)
	}
}

func (e *TerminalEmitter) EmitBatchProgress(completed int, stats *responses.UploadStats) {
	pterm.Printf("  Progress: %s successful, %s failed\n",
		pterm.Green(fmt.Sprintf("%d", stats.Succeeded)),
		pterm.Red(fmt.Sprintf("%d", stats.Failed)),
	)
}

func (e *TerminalEmitter) EmitSummary(stats *responses.UploadStats) {
	pterm.Println("\n" + strings.Repeat("=", separatorWidth))
	pterm.Println("Upload Summary:")
	pterm.Printf("  Total bundles: %d\n", stats.Attempted)
	pterm.Printf("  Successful: %s (%.1f%%)\n", pterm.Green(fmt.Sprintf("%d", stats.Succeeded)), stats.SuccessRate())
	pterm.Printf("  Failed: %s\n", pterm.Red(fmt.Sprintf("%d", stats.Failed)))

	if len(stats.ResourceCounts) == 0 {
		return
	}
	pterm.Println("\nResources uploaded:")
	resourceTypes := make([]string, 0, len(stats.ResourceCounts))
	for resourceType := range stats.ResourceCounts {
		resourceTypes = append(resourceTypes, resourceType)
	}
	sort.Strings(resourceTypes)
	for _, resourceType := range resourceTypes {
		pterm.Printf("  %s: %d\n", resourceType, stats.ResourceCounts[resourceType])
	}
}
