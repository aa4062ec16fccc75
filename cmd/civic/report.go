package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/civicconnect/reporting-system/internal/core/domain"
	"github.com/civicconnect/reporting-system/internal/core/ports"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Submit and browse your reports",
	}
	cmd.AddCommand(newReportSubmitCmd(a), newReportListCmd(a), newReportShowCmd(a))
	return cmd
}

func newReportSubmitCmd(a *app) *cobra.Command {
	var (
		title, description, category, priority, address string
		lat, lng                                        float64
		photoPath, audioPath                            string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new civic issue report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := a.actor()
			if err != nil {
				return err
			}

			input := ports.SubmitReportInput{
				Title:       title,
				Description: description,
				Category:    category,
				Priority:    priority,
				Address:     address,
				CitizenID:   actor.ID,
			}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				input.Location = &ports.CoordinatesInput{Lat: lat, Lng: lng}
			}
			if input.Photo, err = readMedia(photoPath); err != nil {
				return err
			}
			if input.Audio, err = readMedia(audioPath); err != nil {
				return err
			}

			report, err := a.reports.Submit(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Printf("report %s submitted (%s, %s priority)\n", report.ID, report.Category, report.Priority)
			if report.Address != "" {
				fmt.Printf("location: %s\n", report.Address)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "short summary of the issue")
	cmd.Flags().StringVar(&description, "description", "", "detailed description")
	cmd.Flags().StringVar(&category, "category", "", "issue category (pothole, streetlight, trash, graffiti, traffic_sign, water_leak, sidewalk, noise, other)")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low, medium, high, urgent; defaults to medium)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the issue")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude of the issue")
	cmd.Flags().StringVar(&address, "address", "", "street address (reverse geocoded from lat/lng when omitted)")
	cmd.Flags().StringVar(&photoPath, "photo", "", "path to a photo attachment")
	cmd.Flags().StringVar(&audioPath, "audio", "", "path to a voice-note attachment")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newReportListCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your submitted reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := a.actor()
			if err != nil {
				return err
			}
			reports, err := a.reports.List(cmd.Context(), actor, ports.ListReportsInput{Status: status})
			if err != nil {
				return err
			}
			printReports(reports)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by lifecycle status")
	return cmd
}

func newReportShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one report in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := a.actor()
			if err != nil {
				return err
			}
			report, err := a.reports.Get(cmd.Context(), actor, args[0])
			if err != nil {
				return err
			}
			printReportDetail(report)
			return nil
		},
	}
}

func readMedia(path string) (*ports.MediaInput, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment %s: %w", path, err)
	}
	return &ports.MediaInput{Name: filepath.Base(path), Data: data}, nil
}

func printReports(reports []*domain.Report) {
	if len(reports) == 0 {
		fmt.Println("no reports")
		return
	}
	for _, r := range reports {
		dept := string(r.AssignedDepartment)
		if dept == "" {
			dept = "-"
		}
		fmt.Printf("%-36s  %-12s  %-13s  %-12s  %s\n", r.ID, r.Category, r.Status, dept, r.Title)
	}
}

func printReportDetail(r *domain.Report) {
	fmt.Printf("%s\n", r.Title)
	fmt.Printf("  id:          %s\n", r.ID)
	fmt.Printf("  category:    %s\n", r.Category)
	fmt.Printf("  priority:    %s\n", r.Priority)
	fmt.Printf("  status:      %s\n", r.Status)
	if r.AssignedDepartment != "" {
		fmt.Printf("  department:  %s\n", r.AssignedDepartment)
	}
	if r.Address != "" {
		fmt.Printf("  address:     %s\n", r.Address)
	}
	if r.Location != nil {
		fmt.Printf("  location:    %.4f, %.4f\n", r.Location.Lat, r.Location.Lng)
	}
	if r.PhotoURL != "" {
		fmt.Printf("  photo:       %s\n", r.PhotoURL)
	}
	if r.AudioURL != "" {
		fmt.Printf("  audio:       %s\n", r.AudioURL)
	}
	fmt.Printf("  submitted:   %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  updated:     %s\n", r.UpdatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("\n  %s\n", r.Description)
	if len(r.StatusHistory) > 0 {
		fmt.Println("\n  history:")
		for _, h := range r.StatusHistory {
			line := fmt.Sprintf("    %s  %s", h.CreatedAt.Local().Format("2006-01-02 15:04"), h.Status)
			if h.Message != "" {
				line += "  " + h.Message
			}
			fmt.Println(line)
		}
	}
}
