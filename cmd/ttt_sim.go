package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lowaak/ttt-sim/internal/config"
	"github.com/lowaak/ttt-sim/internal/export"
	"github.com/lowaak/ttt-sim/internal/logging"
	"github.com/lowaak/ttt-sim/internal/paceline"
	"github.com/lowaak/ttt-sim/internal/roster"
	"github.com/lowaak/ttt-sim/internal/viewer"
)

// viewerRunner opens the interactive viewer; replaced in tests
var viewerRunner = func(plan *paceline.PacelinePlan, workouts paceline.Workouts, logger *logging.Logger) error {
	return viewer.New(plan, workouts, logger.Logger).Run()
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "ttt-sim",
		Short: "Zwift TTT race simulator",
		Long: `ttt-sim turns a team roster into a team time trial paceline plan and
writes one Zwift workout (.zwo) and power chart (.png) per rider.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Setup(v, configFile); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default is "+config.ConfigFile()+")")
	flags.StringP("input", "i", "", "roster file (.csv, .yaml or .yml)")
	flags.StringP("output", "o", "workouts", "output folder for workout files")
	flags.IntP("rotations", "r", 5, "number of full paceline rotations")
	flags.Bool("view", false, "open the interactive viewer after exporting")
	flags.Bool("zwo", true, "write .zwo workout files")
	flags.Bool("png", true, "write .png power charts")
	flags.Bool("console", true, "draw power profiles in the terminal")
	flags.BoolP("verbose", "v", false, "copy the log to stderr")

	cobra.CheckErr(bindFlags(v, flags, map[string]string{
		"input":           "input",
		"output":          "output",
		"rotations":       "rotations",
		"view":            "view",
		"export.zwo":      "zwo",
		"export.png":      "png",
		"export.console":  "console",
		"logging.verbose": "verbose",
	}))

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(lipgloss.Color("6")).
	Foreground(lipgloss.Color("6")).
	Padding(0, 2)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	riderStyle   = lipgloss.NewStyle().Bold(true)
)

func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger := logging.New(cfg.Logging, stderr)
	defer logger.Close()
	logger.Printf("Main: run started (input=%s rotations=%d)", cfg.Input, cfg.Rotations)

	riders, err := roster.LoadFile(cfg.Input)
	if err != nil {
		return err
	}
	plan, err := paceline.ComposePlan(riders, cfg.Rotations)
	if err != nil {
		return err
	}
	workouts, err := paceline.ProjectPlan(plan)
	if err != nil {
		return err
	}
	logger.Printf("Main: %d riders, %d pulls, %s total", len(plan.Riders), plan.PullCount(), plan.TotalDuration())

	r := lipgloss.NewRenderer(stdout)

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, bannerStyle.Renderer(r).Render("Zwift TTT Race Simulator"))
	fmt.Fprintf(stdout, "Input File: %s\n", filepath.Base(cfg.Input))
	fmt.Fprintf(stdout, "Team Size: %d riders\n", len(plan.Riders))
	fmt.Fprintf(stdout, "Rotations: %d\n", plan.Rotations)
	fmt.Fprintf(stdout, "Total Steps per Rider: %d\n", plan.PullCount()/len(plan.Riders))
	fmt.Fprintf(stdout, "Total Duration: %s\n\n", plan.TotalDuration())

	if err := export.WritePullTable(stdout, plan.Pulls); err != nil {
		return err
	}

	if cfg.Export.Console {
		bars := export.ConsoleBars{
			MaxRotations: cfg.Console.MaxRotations,
			BarHeight:    cfg.Console.BarHeight,
			Renderer:     r,
		}
		for _, name := range plan.RiderNames() {
			fmt.Fprintf(stdout, "\n%s", riderStyle.Renderer(r).Render(name))
			fmt.Fprint(stdout, bars.Render(workouts[name], len(plan.Riders), plan.Rotations))
		}
		fmt.Fprintln(stdout, bars.Legend())
	}

	if cfg.Export.ZWO || cfg.Export.PNG {
		if err := exportFiles(ctx, cfg, plan, workouts, logger, stdout, r); err != nil {
			return err
		}
	}

	if cfg.View {
		return viewerRunner(plan, workouts, logger)
	}
	return nil
}

func exportFiles(ctx context.Context, cfg *config.Config, plan *paceline.PacelinePlan, workouts paceline.Workouts,
	logger *logging.Logger, stdout io.Writer, r *lipgloss.Renderer) error {
	runner := export.NewRunner(logger.Logger, export.RunnerOptions{
		OutputDir: cfg.Output,
		ZWO:       cfg.Export.ZWO,
		PNG:       cfg.Export.PNG,
		Chart:     export.Chart{Width: cfg.Chart.Width, Height: cfg.Chart.Height},
	})

	var mu sync.Mutex
	written := map[export.FileKind]int{}
	unlisten := runner.FileWritten.Listen(func(f export.FileWritten) {
		mu.Lock()
		written[f.Kind]++
		mu.Unlock()
	})
	defer unlisten()

	results, err := runner.Run(ctx, plan, workouts)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, successStyle.Renderer(r).Render(fmt.Sprintf("✅ Workouts exported to '%s' directory", cfg.Output)))
	fmt.Fprintf(stdout, "   Generated %d ZWO and %d PNG files:\n", written[export.KindZWO], written[export.KindPNG])
	for _, res := range results {
		for _, f := range res.Files {
			fmt.Fprintf(stdout, "   - %s\n", filepath.Base(f))
		}
	}
	fmt.Fprintln(stdout)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}
