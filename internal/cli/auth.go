package cli

import (
	"bufio"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/crudadmin/internal/auth"
	"github.com/idilsaglam/crudadmin/internal/ui"
)

func (a *app) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API token",
		Long: `Manage the bearer token sent to the backend.

The token is read from ` + auth.EnvVar + ` when set, otherwise from
credentials.json in api.credentials_dir (default ~/.crudadmin).`,
		Args: usageArgs(cobra.NoArgs),
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "login [token]",
			Short: "Store a token (read from stdin when omitted)",
			Args:  usageArgs(cobra.MaximumNArgs(1)),
			RunE: func(cmd *cobra.Command, args []string) error {
				token := ""
				if len(args) == 1 {
					token = args[0]
				} else {
					fmt.Fprint(cmd.OutOrStdout(), "Token: ")
					line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					token = strings.TrimSpace(line)
				}
				if token == "" {
					return usagef("empty token")
				}
				if _, err := a.creds.Save(token); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "token saved to "+a.creds.Dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Remove the stored token",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := a.creds.Delete(); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "logged out")
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show where the token comes from and when it expires",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				ti, err := a.creds.Load()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if ti == nil {
					ui.Warn(out, "not logged in")
					return nil
				}
				lines := []string{
					"source   " + ti.Source,
					"token    " + mask(ti.Token),
				}
				if ti.ExpiresAt != nil {
					state := humanize.Time(*ti.ExpiresAt)
					if ti.Expired(time.Now()) {
						state = ui.C(ui.Current().Error, "expired "+state)
					}
					lines = append(lines, "expires  "+state)
				}
				ui.Panel(out, lines)
				return nil
			},
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Print the claims of a JWT token",
			Args:  usageArgs(cobra.NoArgs),
			RunE: func(cmd *cobra.Command, _ []string) error {
				ti, err := a.creds.Load()
				if err != nil {
					return err
				}
				if ti == nil {
					return fmt.Errorf("not logged in: run 'crudadmin auth login'")
				}
				claims, ok := auth.Claims(ti.Token)
				if !ok {
					ui.Warn(cmd.OutOrStdout(), "opaque token, no claims to show")
					return nil
				}
				keys := make([]string, 0, len(claims))
				for k := range claims {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				rows := make([][]string, 0, len(keys))
				for _, k := range keys {
					rows = append(rows, []string{ui.C(ui.Current().Accent, k), fmt.Sprint(claims[k])})
				}
				ui.Panel(cmd.OutOrStdout(), ui.Columns(rows))
				return nil
			},
		},
	)
	return cmd
}

// mask keeps the first and last four characters of a token.
func mask(token string) string {
	if len(token) <= 12 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "…" + token[len(token)-4:]
}
