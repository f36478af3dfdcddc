package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/n42/gewe-go/internal/config"
	"github.com/n42/gewe-go/pkg/gewe"
)

func tokenCmd(g *globals) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Request a new gateway token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := g.newClient(nil).GetToken(cmd.Context())
			if err != nil {
				return err
			}
			if err := checkOK(gewe.TokenRoute, resp); err != nil {
				return err
			}
			token, ok := resp.Data().(string)
			if !ok || token == "" {
				return fmt.Errorf("%s: reply carries no token: %s", gewe.TokenRoute, resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)

			if save {
				g.cfg.Gateway.Token = token
				if err := config.SetValue(g.configPath, "gateway", "token", token); err != nil {
					return err
				}
				g.log.Info("token saved", "path", g.configPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the token into the config file")
	return cmd
}
