package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the ragdex version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("ragdex version %s\n", resolveVersion())
	},
}

// resolveVersion prefers the release version injected at build time.
// For go-install builds it falls back to the module version stamped
// into the binary.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
