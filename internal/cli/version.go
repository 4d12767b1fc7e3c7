package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/govimwiki/pkg/parser"
)

type versionInfo struct {
	Version  string   `json:"version"`
	Commit   string   `json:"commit"`
	Built    string   `json:"built"`
	Go       string   `json:"go"`
	Syntaxes []string `json:"syntaxes"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, build date and supported syntaxes of govimwiki.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := versionInfo{
				Version:  info.Version,
				Commit:   info.Commit,
				Built:    info.Date,
				Go:       runtime.Version(),
				Syntaxes: []string{parser.SyntaxVimwiki, parser.SyntaxMarkdown},
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			}
			fmt.Fprintf(out, "govimwiki %s\n  commit:   %s\n  built:    %s\n  go:       %s\n  syntaxes: %s, %s\n",
				v.Version, v.Commit, v.Built, v.Go, v.Syntaxes[0], v.Syntaxes[1])
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
