package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build information",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return fmt.Errorf("fhirloader: build information not available")
	}

	fmt.Printf("fhirloader: %s\n", info.Main.Version)
	fmt.Printf("go:         %s\n", info.GoVersion)
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			fmt.Printf("commit:     %s\n", setting.Value)
		case "vcs.time":
			fmt.Printf("built:      %s\n", setting.Value)
		}
	}
	return nil
}
