package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hrmate-ai/hrmate/internal/db"
	"github.com/hrmate-ai/hrmate/internal/requests"
)

var (
	requestsStatus   string
	requestsUserID   int64
	requestsReviewer int64
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect and review leave requests",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests",
	Run: func(cmd *cobra.Command, args []string) {
		store, cleanup := openRequestStore()
		defer cleanup()
		ctx := context.Background()

		var (
			reqs []requests.LeaveRequest
			err  error
		)
		if requestsUserID > 0 {
			reqs, err = store.ListByUser(ctx, requestsUserID)
		} else {
			reqs, err = store.ListAll(ctx, requestsStatus)
		}
		exitOnError(err)

		if len(reqs) == 0 {
			fmt.Println("No leave requests found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSER\tTYPE\tDATES\tDAYS\tSTATUS\tREASON")
		for _, r := range reqs {
			fmt.Fprintf(w, "%d\t%d\t%s\t%s to %s\t%d\t%s\t%s\n",
				r.ID, r.UserID, r.RequestType, r.StartDate, r.EndDate,
				r.DurationDays, r.Status, r.Reason)
		}
		w.Flush()
	},
}

var requestsApproveCmd = &cobra.Command{
	Use:   "approve [id]",
	Short: "Approve a pending leave request",
	Args:  cobra.ExactArgs(1),
	Run:   reviewRun((*requests.Store).Approve, "approved"),
}

var requestsRejectCmd = &cobra.Command{
	Use:   "reject [id]",
	Short: "Reject a pending leave request",
	Args:  cobra.ExactArgs(1),
	Run:   reviewRun((*requests.Store).Reject, "rejected"),
}

func reviewRun(review func(*requests.Store, context.Context, int64, int64) (*requests.LeaveRequest, error), verb string) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseInt(args[0], 10, 64)
		exitOnError(err)
		if requestsReviewer == 0 {
			exitOnError(fmt.Errorf("--reviewer is required"))
		}

		store, cleanup := openRequestStore()
		defer cleanup()

		req, err := review(store, context.Background(), id, requestsReviewer)
		exitOnError(err)

		fmt.Printf("Request #%d %s (user %d, %s %s to %s)\n",
			req.ID, verb, req.UserID, req.RequestType, req.StartDate, req.EndDate)
	}
}

func openRequestStore() (*requests.Store, func()) {
	cfg, err := loadConfig()
	exitOnError(err)

	database, err := db.Open(dbPath(cfg))
	exitOnError(err)

	return requests.NewStore(database), func() { database.Close() }
}

func init() {
	requestsListCmd.Flags().StringVar(&requestsStatus, "status", "", "filter by status (pending, approved, rejected)")
	requestsListCmd.Flags().Int64Var(&requestsUserID, "user", 0, "filter by user id")
	requestsApproveCmd.Flags().Int64Var(&requestsReviewer, "reviewer", 0, "reviewer user id")
	requestsRejectCmd.Flags().Int64Var(&requestsReviewer, "reviewer", 0, "reviewer user id")

	requestsCmd.AddCommand(requestsListCmd, requestsApproveCmd, requestsRejectCmd)
	rootCmd.AddCommand(requestsCmd)
}
