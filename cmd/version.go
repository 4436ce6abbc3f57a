package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/marcus/p75/internal/output"
	"github.com/spf13/cobra"
)

// buildInfo describes the running binary
type buildInfo struct {
	Version   string `json:"version"`
	Revision  string `json:"revision,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// readBuildInfo prefers a stamped version, then the module version recorded
// by `go install`, then "dev" annotated with the VCS revision.
func readBuildInfo(stamped string, info *debug.BuildInfo) buildInfo {
	b := buildInfo{
		Version:   stamped,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info == nil {
		if b.Version == "" {
			b.Version = "dev"
		}
		return b
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value
			if len(b.Revision) > 12 {
				b.Revision = b.Revision[:12]
			}
		case "vcs.time":
			b.BuiltAt = s.Value
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
	if b.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	if b.Version == "" {
		b.Version = "dev"
	}
	return b
}

func (b buildInfo) String() string {
	s := "p75 " + b.Version
	if b.Revision != "" {
		s += " (" + b.Revision
		if b.Dirty {
			s += ", dirty"
		}
		s += ")"
	}
	return fmt.Sprintf("%s %s %s", s, b.GoVersion, b.Platform)
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version information",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, _ := debug.ReadBuildInfo()
		b := readBuildInfo(version, info)
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(b)
		}
		fmt.Println(b)
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("json", false, "JSON output")
	rootCmd.AddCommand(versionCmd)
}
