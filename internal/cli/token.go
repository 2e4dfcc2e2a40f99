package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain an API access token, minting one if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}

			var token string
			if refresh {
				minted, err := rt.tokens.RefreshToken(rt.context(cmd))
				if err != nil {
					return err
				}
				token = minted.AccessToken
			} else {
				token, err = rt.tokens.GetAccessToken(rt.context(cmd))
				if err != nil {
					return err
				}
			}

			prefix := token
			if len(prefix) > 20 {
				prefix = prefix[:20]
			}

			fmt.Printf("Token obtained: %s...\n", prefix)
			fmt.Printf("Environment: %s\n", rt.config.API.Env)
			fmt.Printf("Base URL: %s\n", rt.config.API.BaseURL())
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "force a new token exchange")

	return cmd
}
