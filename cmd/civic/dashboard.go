package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/civicconnect/reporting-system/internal/core/domain"
)

var (
	metricBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			Align(lipgloss.Center)
	metricValue  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sectionTitle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregated report analytics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireAdmin(); err != nil {
				return err
			}
			analytics, err := a.analytics.Compute(cmd.Context())
			if err != nil {
				return err
			}
			renderDashboard(analytics)
			return nil
		},
	}
}

func renderDashboard(a *domain.Analytics) {
	metrics := lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Total Reports", fmt.Sprintf("%d", a.TotalReports)),
		metric("Resolution Rate", fmt.Sprintf("%.1f%%", a.ResolutionRate())),
		metric("Avg Response", fmt.Sprintf("%.1fd", a.AverageResponseTime)),
		metric("Active Issues", fmt.Sprintf("%d", a.ActiveIssues())),
	)
	fmt.Println(metrics)

	fmt.Println(sectionTitle.Render("By status"))
	for _, s := range domain.ReportStatuses() {
		printBar(string(s), a.ReportsByStatus[s])
	}

	fmt.Println(sectionTitle.Render("By category"))
	for _, c := range domain.Categories() {
		printBar(string(c), a.ReportsByCategory[c])
	}

	fmt.Println(sectionTitle.Render("By priority"))
	for _, p := range domain.Priorities() {
		printBar(string(p), a.ReportsByPriority[p])
	}
}

func metric(label, value string) string {
	return metricBox.Render(lipgloss.JoinVertical(lipgloss.Center, metricValue.Render(value), label))
}

func printBar(label string, n int) {
	fmt.Printf("  %-13s %3d %s\n", label, n, barStyle.Render(strings.Repeat("█", n)))
}
