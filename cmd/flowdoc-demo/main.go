// Command flowdoc-demo is a non-interactive harness for the
// presentation/layout engine: it loads a document-JSON fixture, runs
// one (or, with --watch, repeated) layout passes through
// internal/controller, and prints a page/fragment summary to the
// terminal. It plays the role glow's own CLI plays for the markdown
// pager: a thin, real entry point exercising the library end to end,
// not a feature of the library itself.
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hholst80/flowdoc/internal/controller"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "flowdoc-demo",
		Short: "Run one or more layout passes over a document fixture and print the resulting pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v, cmd)
		},
	}

	cmd.Flags().String("doc", "", "path to a document-JSON fixture (uses a built-in sample when empty)")
	cmd.Flags().String("style", "", "path to a styles-JSON fixture (optional)")
	cmd.Flags().Float64("zoom", 1.0, "initial zoom factor, must be a positive finite number")
	cmd.Flags().Bool("watch", false, "watch the document fixture and re-layout on change")
	cmd.Flags().String("theme", "auto", "dark | light | auto")
	cmd.Flags().Int("columns", 100, "terminal column budget for the summary output")

	_ = v.BindPFlag("doc", cmd.Flags().Lookup("doc"))
	_ = v.BindPFlag("style", cmd.Flags().Lookup("style"))
	_ = v.BindPFlag("zoom", cmd.Flags().Lookup("zoom"))
	_ = v.BindPFlag("watch", cmd.Flags().Lookup("watch"))
	_ = v.BindPFlag("theme", cmd.Flags().Lookup("theme"))
	_ = v.BindPFlag("columns", cmd.Flags().Lookup("columns"))

	cmd.AddCommand(newEditCmd())
	cmd.AddCommand(newManCmd(cmd))

	return cmd
}

func run(v *viper.Viper, cmd *cobra.Command) error {
	ensureConfigDir()
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	envOverrides, err := loadEnvOverrides()
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.InfoLevel)
	if envOverrides.LogJSON {
		logger.SetFormatter(log.JSONFormatter)
	}
	if envOverrides.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}

	docPath := cfg.DocPath
	if docPath == "" {
		path, err := writeTempFixture()
		if err != nil {
			return fmt.Errorf("writing built-in fixture: %w", err)
		}
		defer os.Remove(path)
		docPath = path
	} else if info, err := os.Stat(docPath); err == nil && info.IsDir() {
		found, err := discoverFixture(docPath)
		if err != nil {
			return err
		}
		docPath = found
	}

	doc, err := loadDocument(docPath)
	if err != nil {
		return err
	}

	columns, _ := cmd.Flags().GetInt("columns")
	painter := newTextPainter(columns)

	ctrl, err := controller.New(controller.Options{
		Document: doc,
		Adapter:  fixtureAdapter{},
		Painter:  painter,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer ctrl.Destroy()

	if err := ctrl.SetZoom(cfg.Zoom); err != nil {
		return err
	}

	ctrl.Telemetry(func(ev controller.TelemetryEvent) {
		logger.Debug("telemetry", "type", ev.Type, "summary", ev.Summary())
	})

	ctrl.ScheduleRerender()
	ctrl.RunPendingRerender(nil)

	if health := ctrl.GetLayoutHealthState(); health != controller.HealthOK {
		logger.Error("layout degraded or failed", "health", health.String(), "error", ctrl.GetLayoutError())
	}

	if !cfg.Watch {
		return nil
	}

	stop := make(chan struct{})
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		close(stop)
	}()
	logger.Info("watching for changes", "doc", docPath)
	return watchDocument(doc, ctrl, logger, stop)
}

func writeTempFixture() (string, error) {
	f, err := os.CreateTemp("", "flowdoc-demo-*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(defaultFixtureJSON); err != nil {
		return "", err
	}
	return f.Name(), nil
}
