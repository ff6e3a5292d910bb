// cmd/lead-scorer/registry.go
package main

import (
	"fmt"

	"rfq-lead-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Validate the activity registry and list its task types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, a := range reg.Activities {
				fmt.Fprintf(out, "%-20s timeout=%-5s retries=%d\n", a.TaskType, a.Timeout, a.Retries)
			}

			problems := reg.Validate()
			for _, p := range problems {
				fmt.Fprintln(out, "problem:", p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("registry %s has %d problem(s)", path, len(problems))
			}
			fmt.Fprintf(out, "registry %s is valid (%d activities)\n", path, len(reg.Activities))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "configs/activity-registry.json", "Path to registry file")
	return cmd
}
