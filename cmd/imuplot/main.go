// Command imuplot charts an MPU6050 sample log.
//
// It reads the semicolon-delimited CSV written by the data logger, then
// shows two side-by-side line charts: the three acceleration axes and the
// three angular-rate axes, against sample index. The charts are served on a
// loopback address and opened in the default browser. imuplot exits when the
// chart page is closed or on SIGINT/SIGTERM.
//
// Usage:
//
//	go run ./cmd/imuplot [flags]
//
// Flags:
//
//	-file        Sample log (default: ArquivosDados/mpu6050_data.csv)
//	-config      Optional JSON viewer config
//	-listen      Viewer listen address (overrides config)
//	-no-browser  Print the viewer URL instead of opening a browser
//	-version     Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/imuplot/internal/config"
	"github.com/banshee-data/imuplot/internal/figure"
	"github.com/banshee-data/imuplot/internal/fsutil"
	"github.com/banshee-data/imuplot/internal/samples"
	"github.com/banshee-data/imuplot/internal/version"
	"github.com/banshee-data/imuplot/internal/viewer"
)

// openURL launches the viewer. Tests replace it.
var openURL = browser.OpenURL

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("imuplot: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fset := flag.NewFlagSet("imuplot", flag.ContinueOnError)
	file := fset.String("file", config.DefaultSamplesPath, "Sample log (semicolon-delimited CSV)")
	configPath := fset.String("config", "", "Optional JSON viewer config")
	listen := fset.String("listen", "", "Viewer listen address (overrides config)")
	noBrowser := fset.Bool("no-browser", false, "Print the viewer URL instead of opening a browser")
	showVersion := fset.Bool("version", false, "Print version and exit")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	cfg := config.DefaultViewerConfig()
	if *configPath != "" {
		loaded, err := config.LoadViewerConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.Listen = listen
	}

	log.Printf("%s", version.String())

	cols, err := samples.Load(fsutil.OSFileSystem{}, *file, samples.Options{Delimiter: cfg.GetDelimiter()})
	if err != nil {
		return err
	}
	for _, s := range cols.Summaries() {
		log.Printf("%-8s min=%9.3f max=%9.3f mean=%9.3f std=%9.3f", s.Name, s.Min, s.Max, s.Mean, s.StdDev)
	}

	srv, err := viewer.NewServer(cols, viewer.Options{
		Listen:        cfg.GetListen(),
		CloseOnUnload: cfg.GetCloseOnUnload(),
		Figure: figure.Options{
			Width:    vg.Length(cfg.GetWidthIn()) * vg.Inch,
			Height:   vg.Length(cfg.GetHeightIn()) * vg.Inch,
			MaxTicks: cfg.GetMaxTicks(),
		},
		Page: viewer.PageOptions{
			Width:      cfg.GetPageWidth(),
			Height:     cfg.GetPageHeight(),
			AssetsHost: cfg.GetAssetsHost(),
			MaxTicks:   cfg.GetMaxTicks(),
		},
	})
	if err != nil {
		return err
	}
	if err := srv.Start(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Viewer: %s\n", srv.URL())
	if cfg.GetOpenBrowser() && !*noBrowser {
		if err := openURL(srv.URL()); err != nil {
			log.Printf("could not open a browser, visit %s instead: %v", srv.URL(), err)
		}
	}

	// Serve only reports ctx's error once ctx is done; that is a normal exit.
	if err := srv.Serve(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
