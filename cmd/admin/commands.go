package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"freelancebid/internal/domain/entity"
	"freelancebid/pkg/feedclient"
)

type globalOptions struct {
	server  string
	token   string
	timeout time.Duration
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "fraudadmin",
		Short:         "Moderate fraud reports from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", envOr("FRAUD_ADMIN_SERVER", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("FRAUD_ADMIN_TOKEN"), "bearer token of an admin account")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	root.AddCommand(newListCommand(opts), newRespondCommand(opts), newDeleteCommand(opts))
	return root
}

func (o *globalOptions) feed(limit int) *feedclient.Feed {
	client := feedclient.NewClient(feedclient.Config{BaseURL: o.server, Token: o.token})
	return feedclient.NewFeed(client, limit)
}

func newListCommand(opts *globalOptions) *cobra.Command {
	var (
		page          int
		limit         int
		respondedOnly bool
		from, to      string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fraud reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := contextWithTimeout(cmd, opts.timeout)
			defer cancel()

			feed := opts.feed(limit)
			feed.SetFilters(respondedOnly, from, to)
			feed.SetPage(page)
			if err := feed.Fetch(ctx); err != nil {
				return err
			}

			printReports(cmd.OutOrStdout(), feed.Snapshot())
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().BoolVar(&respondedOnly, "responded-only", false, "only reports that already have a response")
	cmd.Flags().StringVar(&from, "from", "", "earliest creation date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest creation date (YYYY-MM-DD)")
	return cmd
}

func newRespondCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "respond <project|user> <reportId> <message...>",
		Short: "Send or edit the response to a report",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := contextWithTimeout(cmd, opts.timeout)
			defer cancel()

			feed := opts.feed(0)
			key := entity.ReportKey{Type: entity.ReportType(args[0]), ReportID: args[1]}
			if err := feed.Respond(ctx, key, strings.Join(args[2:], " ")); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), feed.Snapshot().Respond.Success)
			return nil
		},
	}
}

func newDeleteCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project|user> <reportedOnId> <reportId>",
		Short: "Delete a report from its project or user",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := contextWithTimeout(cmd, opts.timeout)
			defer cancel()

			feed := opts.feed(0)
			if err := feed.Delete(ctx, entity.ReportType(args[0]), args[1], args[2]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), feed.Snapshot().Delete.Success)
			return nil
		},
	}
}

func printReports(out io.Writer, state feedclient.State) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tREPORT ID\tSUBJECT\tREPORTER\tCREATED\tRESPONDED\tREASON")
	for _, r := range state.Items {
		base := r.Base()
		responded := "-"
		if base.Responded() {
			responded = base.ResponseAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Type(), base.ReportID, subjectLabel(r), reporterLabel(base),
			base.CreatedAt.Format("2006-01-02 15:04"), responded, truncate(base.Reason, 48))
	}
	w.Flush()
	fmt.Fprintf(out, "\npage %d of %d, %d reports\n", state.CurrentPage, state.TotalPages, state.Total)
}

func subjectLabel(r entity.FraudReport) string {
	switch v := r.(type) {
	case *entity.ProjectReport:
		if v.ProjectTitle != nil {
			return *v.ProjectTitle
		}
	case *entity.UserReport:
		if v.ReportedUserName != nil {
			return *v.ReportedUserName
		}
	}
	return r.SubjectRef()
}

func reporterLabel(base *entity.ReportBase) string {
	if base.ReportedByName != nil {
		return *base.ReportedByName
	}
	if base.ReporterUnavailable {
		return base.ReportedByUserID + " (unavailable)"
	}
	return base.ReportedByUserID
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
