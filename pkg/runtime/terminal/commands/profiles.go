package commands

import (
	"fmt"

	"github.com/de-tools/commerce-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

func NewProfilesCmd(globals *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the dataset profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := globals.config()
			if err != nil {
				return err
			}
			path := cfg.Profiles.Path
			if globals.ProfilesPath != "" {
				path = globals.ProfilesPath
			}

			registry, err := config.NewRegistry(path)
			if err != nil {
				return err
			}
			names, err := registry.GetProfiles(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				profile, err := registry.GetProfile(cmd.Context(), name)
				if err != nil {
					fmt.Fprintf(out, "%s\tinvalid: %v\n", name, err)
					continue
				}
				marker := ""
				if name == cfg.Profiles.Default {
					marker = " (default)"
				}
				fmt.Fprintf(out, "%s\t%s%s\n", name, profile.Kind, marker)
			}
			return nil
		},
	}
}
