package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/gaia/internal/cli/output"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the gaia version and the Go toolchain it was built with.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := output.VersionInfo{
				Version:   version,
				GoVersion: runtime.Version(),
				OS:        runtime.GOOS,
				Arch:      runtime.GOARCH,
			}

			r := NewCommandContext(cmd).Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(info)
			}
			r.Printf("gaia v%s\n", info.Version)
			r.Printf("GaiaScript compiler, %s %s/%s\n", info.GoVersion, info.OS, info.Arch)
			return nil
		},
	}
}
