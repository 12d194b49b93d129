package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/skillradar/internal/adapters/profile"
	service "github.com/okian/skillradar/internal/app"
	"github.com/okian/skillradar/internal/config"
	"github.com/okian/skillradar/internal/domain/career"
	"github.com/okian/skillradar/internal/domain/scoring"
	"github.com/okian/skillradar/internal/domain/trend"
	"github.com/okian/skillradar/pkg/logger"
	"github.com/okian/skillradar/pkg/metrics"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // build stamp

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "skillradar",
		Short: "Score learner competencies and career fit",
		Long: `skillradar reads learner profiles (grades, skill levels, certificates,
career targets) and reports per-subject averages, a radar vector,
remediation suggestions, career match percentages and trend risk.`,
		SilenceUsage: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newAnalyzeCmd(), newVersionCmd())
	return root
}

type analyzeFlags struct {
	configFile      string
	metricsTextfile string
	workers         int
	compact         bool
}

func newAnalyzeCmd() *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze [flags] PROFILE...",
		Short: "Analyze profile files and print JSON reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f, args)
		},
	}
	cmd.Flags().StringVar(&f.configFile, "config", "", "config file (default is $"+config.EnvConfigFile+")")
	cmd.Flags().StringVar(&f.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after the run")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "profiles analysed concurrently (default from config)")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "print JSON on one line")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "skillradar", version)
		},
	}
}

// runAnalyze prints reports for every profile that loaded. It still fails
// when any profile could not be loaded.
func runAnalyze(ctx context.Context, stdout, stderr io.Writer, f analyzeFlags, paths []string) error {
	path := f.configFile
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	cfg, err := config.LoadFrom(ctx, path)
	if err != nil {
		return err
	}

	// stdout carries the JSON reports, so logs go to stderr.
	logOpts := []logger.Option{logger.WithWriter(stderr)}
	if cfg.LogFormat == "json" {
		logOpts = append(logOpts, logger.WithJSON())
	}
	if err := logger.Init(logOpts...); err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	log := logger.Named("cli")

	workers := cfg.WorkerCount
	if f.workers > 0 {
		workers = f.workers
	}
	svc := service.New(
		service.WithEngine(newEngine(cfg)),
		service.WithWorkerCount(workers),
		service.WithLogger(log),
	)

	profiles, loadErr := profile.LoadAll(ctx, paths)
	if loadErr != nil {
		log.Error(ctx, "some profiles could not be loaded", logger.Error(loadErr))
	}

	reports, err := svc.AnalyzeBatch(ctx, profiles)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetEscapeHTML(false)
	if !f.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	textfile := cfg.MetricsTextfile
	if f.metricsTextfile != "" {
		textfile = f.metricsTextfile
	}
	if textfile != "" {
		if err := metrics.WriteTextfile(textfile); err != nil {
			return err
		}
		log.Info(ctx, "metrics written", logger.String("path", textfile))
	}
	return loadErr
}

func newEngine(cfg *config.Config) *scoring.Engine {
	return scoring.NewEngine(
		scoring.WithNames(cfg.SubjectNames, cfg.SkillNames, cfg.CertificateNames),
		scoring.WithTopCounts(cfg.TopSubjects, cfg.TopSkills),
		scoring.WithSuggestionThreshold(cfg.SuggestionThreshold),
		scoring.WithCareerWeights(career.Weights{
			Subjects:     cfg.SubjectWeight,
			Skills:       cfg.SkillWeight,
			Certificates: cfg.CertificateWeight,
		}),
		scoring.WithEffortCaps(trend.EffortCaps{
			LoginDays:      cfg.EffortLoginCap,
			DashboardOpens: cfg.EffortDashboardCap,
			Updates:        cfg.EffortUpdatesCap,
			Streak:         cfg.EffortStreakCap,
		}),
	)
}
