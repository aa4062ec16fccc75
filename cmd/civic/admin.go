package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/civicconnect/reporting-system/internal/core/domain"
	"github.com/civicconnect/reporting-system/internal/core/ports"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the report lifecycle (admin role required)",
	}
	cmd.AddCommand(
		newAdminListCmd(a),
		newTransitionCmd(a, "ack", "Acknowledge a submitted report", domain.StatusAcknowledged),
		newAdminStartCmd(a),
		newTransitionCmd(a, "resolve", "Mark a report resolved", domain.StatusResolved),
		newTransitionCmd(a, "close", "Close a resolved report", domain.StatusClosed),
	)
	return cmd
}

func newAdminListCmd(a *app) *cobra.Command {
	var status, department, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all reports across citizens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := a.requireAdmin()
			if err != nil {
				return err
			}
			reports, err := a.reports.List(cmd.Context(), actor, ports.ListReportsInput{
				Status:     status,
				Department: department,
				Search:     search,
			})
			if err != nil {
				return err
			}
			printReports(reports)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by lifecycle status")
	cmd.Flags().StringVar(&department, "department", "", "filter by assigned department")
	cmd.Flags().StringVar(&search, "search", "", "free-text search over title, description and address")
	return cmd
}

// newTransitionCmd builds a single-transition command: ack, resolve, close.
func newTransitionCmd(a *app, use, short string, target domain.ReportStatus) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := a.requireAdmin()
			if err != nil {
				return err
			}
			report, err := a.reports.Update(cmd.Context(), actor, args[0], ports.UpdateReportInput{
				Status:  string(target),
				Message: message,
			})
			if err != nil {
				return err
			}
			fmt.Printf("report %s is now %s\n", report.ID, report.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "note recorded on the status history")
	return cmd
}

func newAdminStartCmd(a *app) *cobra.Command {
	var department, message string

	cmd := &cobra.Command{
		Use:   "start <id>",
		Short: "Move a report into in_progress and assign a department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := a.requireAdmin()
			if err != nil {
				return err
			}
			report, err := a.reports.Update(cmd.Context(), actor, args[0], ports.UpdateReportInput{
				Status:     string(domain.StatusInProgress),
				Department: department,
				Message:    message,
			})
			if err != nil {
				return err
			}
			fmt.Printf("report %s is now %s (assigned to %s)\n", report.ID, report.Status, report.AssignedDepartment)
			return nil
		},
	}
	cmd.Flags().StringVar(&department, "department", "", "department to assign (defaults by category)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "note recorded on the status history")
	return cmd
}
