package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/loader"
	"github.com/eringen/folio/source"
)

func (c *cli) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Fetch every section from the configured source and report its state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, closer, err := source.Open(c.sourceConfig())
			if err != nil {
				return err
			}
			defer closer.Close()
			return validateSet(cmd, set)
		},
	}
	cmd.Flags().String("driver", "", "source driver: mock, file, dir, sqlite, blob")
	cmd.Flags().String("path", "", "catalog file, content directory or database path")
	_ = c.v.BindPFlag("source.driver", cmd.Flags().Lookup("driver"))
	_ = c.v.BindPFlag("source.path", cmd.Flags().Lookup("path"))
	return cmd
}

func validateSet(cmd *cobra.Command, set source.Set) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	failed := 0

	work := loader.Run(ctx, set.Work.FetchAll, loader.WithFallback(loader.WorkItemsMessage))
	if report(out, "work items", work.Status, work.Err) {
		for _, it := range work.Data {
			fmt.Fprintf(out, "  %-8s %s (%s)\n", it.Type, it.Title, it.Link())
		}
	} else {
		failed++
	}

	about := loader.Run(ctx, set.About.FetchOne, loader.WithFallback(loader.AboutMessage))
	if report(out, "about", about.Status, about.Err) {
		fmt.Fprintf(out, "  %s, %s\n", about.Data.Name, about.Data.Role)
	} else {
		failed++
	}

	contact := loader.Run(ctx, set.Contact.FetchOne, loader.WithFallback(loader.ContactMessage))
	if report(out, "contact", contact.Status, contact.Err) {
		fmt.Fprintf(out, "  %s\n", contact.Data.Email)
	} else {
		failed++
	}

	if failed > 0 {
		return errors.New("validation failed")
	}
	return nil
}

// report prints one section's outcome and reports whether it is Ready.
func report(w io.Writer, name string, status loader.Status, msg string) bool {
	switch status {
	case loader.Ready:
		fmt.Fprintf(w, "%-10s ok\n", name)
		return true
	case loader.Failed:
		fmt.Fprintf(w, "%-10s failed: %s\n", name, msg)
	default:
		fmt.Fprintf(w, "%-10s interrupted\n", name)
	}
	return false
}
