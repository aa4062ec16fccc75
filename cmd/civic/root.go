package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/civicconnect/reporting-system/internal/core/domain"
	"github.com/civicconnect/reporting-system/internal/core/ports"
	"github.com/civicconnect/reporting-system/internal/core/service"
	"github.com/civicconnect/reporting-system/internal/infrastructure/geo"
	"github.com/civicconnect/reporting-system/internal/infrastructure/media"
	"github.com/civicconnect/reporting-system/internal/infrastructure/storage/localstore"
	"github.com/civicconnect/reporting-system/internal/pkg/config"
	"github.com/civicconnect/reporting-system/pkg/logger"
)

// app is the composition root: it owns configuration, the store, and the
// services, and hands them to the commands.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	store     *localstore.Store
	watcher   *localstore.Watcher
	auth      *service.AuthService
	reports   *service.ReportService
	analytics *service.AnalyticsService
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "civic",
		Short: "Report and manage civic issues from the command line",
		Long: `civic is a local-first civic issue reporter: citizens submit geotagged
reports with photo and voice-note attachments, administrators move them
through their lifecycle and read aggregated analytics. All state lives in
a local data directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Context())
		},
	}

	root.AddCommand(
		newSignupCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newReportCmd(a),
		newAdminCmd(a),
		newDashboardCmd(a),
		newWatchCmd(a),
	)
	return root
}

func (a *app) init(ctx context.Context) error {
	a.cfg = config.Load()
	a.log = logger.Init(logger.Options{
		Level:  a.cfg.LogLevel,
		Pretty: a.cfg.LogPretty,
		Output: os.Stderr,
	})

	dataDir, mediaDir, err := resolveDirs(a.cfg)
	if err != nil {
		return err
	}

	a.store, err = localstore.Open(dataDir, a.log)
	if err != nil {
		return err
	}
	if a.cfg.SeedSampleData {
		if err := a.store.Seed(); err != nil {
			return err
		}
	}

	blobs, err := media.NewBlobStore(mediaDir, a.log)
	if err != nil {
		return err
	}
	geocoder := geo.NewClient(a.cfg.Geocoder.BaseURL, a.cfg.Geocoder.Timeout, a.log)

	users := localstore.NewUserRepository(a.store)
	sessions := localstore.NewSessionRepository(a.store)
	reports := localstore.NewReportRepository(a.store)

	a.auth = service.NewAuthService(ctx, users, sessions, a.log)
	a.reports = service.NewReportService(reports, users, blobs, geocoder, a.log)
	a.analytics = service.NewAnalyticsService(reports, a.log)
	a.watcher = localstore.NewWatcher(a.store, a.cfg.PollInterval, a.log)
	return nil
}

func resolveDirs(cfg *config.Config) (dataDir, mediaDir string, err error) {
	dataDir, mediaDir = cfg.DataDir, cfg.MediaDir
	if dataDir != "" && mediaDir != "" {
		return dataDir, mediaDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("resolve data dirs: %w", err)
	}
	base := filepath.Join(home, ".civic-connect")
	if dataDir == "" {
		dataDir = filepath.Join(base, "data")
	}
	if mediaDir == "" {
		mediaDir = filepath.Join(base, "media")
	}
	return dataDir, mediaDir, nil
}

// actor returns the signed-in user as an operation actor.
func (a *app) actor() (ports.Actor, error) {
	u := a.auth.CurrentUser()
	if u == nil {
		return ports.Actor{}, errors.New("not signed in, run 'civic login' first")
	}
	return ports.Actor{ID: u.ID, Role: u.Role}, nil
}

func (a *app) requireAdmin() (ports.Actor, error) {
	actor, err := a.actor()
	if err != nil {
		return ports.Actor{}, err
	}
	if actor.Role != domain.RoleAdmin {
		return ports.Actor{}, domain.ErrForbidden
	}
	return actor, nil
}

// userMessage maps known domain errors to the inline messages shown to the
// user; unexpected errors pass through unchanged.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, domain.ErrUserExists):
		return "an account with that email already exists"
	case errors.Is(err, domain.ErrReportNotFound):
		return "report not found"
	case errors.Is(err, domain.ErrForbidden):
		return "admin role required"
	case errors.Is(err, domain.ErrUploadFailed):
		return "attachment upload failed, please try again"
	default:
		return err.Error()
	}
}
