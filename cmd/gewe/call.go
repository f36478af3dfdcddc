package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n42/gewe-go/pkg/gewe"
)

func callCmd(g *globals) *cobra.Command {
	var appID string

	cmd := &cobra.Command{
		Use:   "call <endpoint|route> [field=value ...]",
		Short: "Invoke any gateway endpoint",
		Long: `Invoke an endpoint by name (PostText) or route (/message/postText).
Fields are given as field=value; list fields take comma separated values.
appId defaults to --app-id, the config file or the latest stored session.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, err := gewe.DefaultRegistry.Resolve(args[0])
			if err != nil {
				return err
			}
			values, err := parseFieldArgs(args[1:])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if _, ok := values["appId"]; !ok && hasField(ep, "appId") {
				db, err := g.openStore(ctx)
				if err != nil {
					return err
				}
				if db != nil {
					defer db.Close()
				}
				id, err := g.resolveAppID(ctx, appID, db)
				if err != nil {
					return err
				}
				values["appId"] = id
			}

			params, err := ep.ParseArgs(values)
			if err != nil {
				return err
			}
			resp, err := g.newClient(nil).Post(ctx, ep.Route, params)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&appID, "app-id", "", "device id used when appId is not given as a field")
	return cmd
}

func parseFieldArgs(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("argument %q is not field=value", arg)
		}
		if _, dup := values[k]; dup {
			return nil, fmt.Errorf("field %s given twice", k)
		}
		values[k] = v
	}
	return values, nil
}

func hasField(ep *gewe.Endpoint, wire string) bool {
	for _, f := range ep.Fields {
		if f.Wire == wire {
			return true
		}
	}
	return false
}
