package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/idilsaglam/crudadmin/internal/model"
	"github.com/idilsaglam/crudadmin/internal/ui"
)

func (a *app) lsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [kind]",
		Short: "List records (posts and tags when kind is omitted)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := model.Kinds()
			if len(args) == 1 {
				k, err := kindArg(args[0])
				if err != nil {
					return err
				}
				kinds = []model.Kind{k}
			}

			// collections are independent, fetch them together
			results := make([][]model.Record, len(kinds))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, k := range kinds {
				g.Go(func() error {
					recs, err := a.client.Service(k).List(ctx)
					if err != nil {
						return fmt.Errorf("list %s: %w", k.Name, err)
					}
					results[i] = recs
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			now := time.Now()
			for i, k := range kinds {
				printCollection(cmd.OutOrStdout(), k, results[i], now)
			}
			return nil
		},
	}
}

func printCollection(w io.Writer, k model.Kind, recs []model.Record, now time.Time) {
	t := ui.Current()
	lines := []string{fmt.Sprintf("%s  %s %d", ui.C(t.Title, k.Title), ui.C(t.Accent, "Total"), len(recs)), ""}
	if len(recs) == 0 {
		lines = append(lines, ui.C(t.Muted, "no items"))
		ui.Panel(w, lines)
		return
	}
	rows := [][]string{{ui.Dim("ID"), ui.Dim("NAME"), ui.Dim("AGE"), ui.Dim("WEIGHT"), ui.Dim("CREATED")}}
	for _, r := range recs {
		rows = append(rows, []string{
			ui.C(t.Muted, r.ID.String()),
			r.Name,
			model.FormatNumber(r.Age),
			model.FormatNumber(r.Weight),
			ui.TimeAgo(r.CreatedAt, now),
		})
	}
	ui.Panel(w, append(lines, ui.Columns(rows)...))
}

func printRecord(w io.Writer, k model.Kind, rec model.Record) {
	t := ui.Current()
	lines := []string{ui.C(t.Title, k.Name+" "+rec.ID.String()), ""}
	field := func(label, value string) string {
		return fmt.Sprintf("%s %s %s", ui.C(t.Muted, t.Bullet), ui.C(t.Accent, fmt.Sprintf("%-8s", label)), value)
	}
	for _, f := range k.Fields {
		lines = append(lines, field(f.Label, rec.Field(f.Key)))
	}
	if !rec.CreatedAt.IsZero() {
		lines = append(lines, field("Created", ui.TimeAgo(rec.CreatedAt, time.Now())))
	}
	ui.Panel(w, lines)
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Show one record",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kindArg(args[0])
			if err != nil {
				return err
			}
			rec, err := a.client.Service(k).Get(cmd.Context(), model.NewID(args[1]))
			if err != nil {
				return err
			}
			printRecord(cmd.OutOrStdout(), k, rec)
			return nil
		},
	}
}

// fieldFlags registers one string flag per editable field.
func fieldFlags(cmd *cobra.Command, values map[string]*string) {
	for _, f := range model.Post.Fields {
		v := new(string)
		values[f.Key] = v
		cmd.Flags().StringVar(v, f.Key, "", strings.ToLower(f.Label))
	}
}

func (a *app) addCmd() *cobra.Command {
	values := map[string]*string{}
	cmd := &cobra.Command{
		Use:     "add <kind> --name N --age A --weight W",
		Short:   "Create a record",
		Example: "  crudadmin add post --name Ann --age 30 --weight 60",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kindArg(args[0])
			if err != nil {
				return err
			}
			in := make(map[string]string, len(values))
			for key, v := range values {
				in[key] = *v
			}
			rec, err := k.Decode(model.Record{}, in)
			if err != nil {
				return usageError{err}
			}
			created, err := a.client.Service(k).Create(cmd.Context(), rec)
			if err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("added %s %s", k.Name, created.ID))
			return nil
		},
	}
	fieldFlags(cmd, values)
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	values := map[string]*string{}
	cmd := &cobra.Command{
		Use:     "edit <kind> <id> [--name N] [--age A] [--weight W]",
		Short:   "Change fields of a record",
		Example: "  crudadmin edit tag 42 --weight 61.5",
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kindArg(args[0])
			if err != nil {
				return err
			}
			changed := map[string]string{}
			for key, v := range values {
				if cmd.Flags().Changed(key) {
					changed[key] = *v
				}
			}
			if len(changed) == 0 {
				return usagef("nothing to change: pass at least one of --name, --age, --weight")
			}

			svc := a.client.Service(k)
			current, err := svc.Get(cmd.Context(), model.NewID(args[1]))
			if err != nil {
				return err
			}
			in := k.Values(current)
			for key, v := range changed {
				in[key] = v
			}
			rec, err := k.Decode(current, in)
			if err != nil {
				return usageError{err}
			}
			if rec.ID.IsZero() {
				rec.ID = model.NewID(args[1])
			}
			if _, err := svc.Update(cmd.Context(), rec); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("updated %s %s", k.Name, rec.ID))
			return nil
		},
	}
	fieldFlags(cmd, values)
	return cmd
}

func (a *app) rmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <kind> <id>",
		Short: "Delete a record",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := kindArg(args[0])
			if err != nil {
				return err
			}
			id := model.NewID(args[1])
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %s %s permanently? [y/N] ", k.Name, id)
				if !confirmed(cmd.InOrStdin()) {
					ui.Warn(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}
			if err := a.client.Service(k).Delete(cmd.Context(), id); err != nil {
				return err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("deleted %s %s", k.Name, id))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
