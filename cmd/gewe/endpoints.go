package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/n42/gewe-go/pkg/gewe"
)

func endpointsCmd() *cobra.Command {
	var area string

	cmd := &cobra.Command{
		Use:               "endpoints",
		Short:             "List the gateway endpoints known to this client",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "AREA\tNAME\tROUTE\tFIELDS")
			for _, ep := range gewe.DefaultRegistry.List() {
				if area != "" && ep.Area != area {
					continue
				}
				fields := make([]string, len(ep.Fields))
				for i, f := range ep.Fields {
					fields[i] = f.Wire + ":" + f.Kind.String()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ep.Area, ep.Name, ep.Route, strings.Join(fields, " "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&area, "area", "", "only list endpoints of this area (login, message, group, ...)")
	return cmd
}
