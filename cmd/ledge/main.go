// ledge runs one status bar in the foreground on the controlling terminal.
//
// The bar to run comes from the config file (first bar table by default,
// -bar to pick another). Logs go to the state directory once rendering
// starts; startup failures are reported on stderr before the screen is
// taken over.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"golang.org/x/term"

	"github.com/b/ledge/pkg/bar"
	"github.com/b/ledge/pkg/colors"
	"github.com/b/ledge/pkg/config"
	"github.com/b/ledge/pkg/display"
	"github.com/b/ledge/pkg/ipc"
	"github.com/b/ledge/pkg/panels"
	"github.com/b/ledge/pkg/paths"
	"github.com/b/ledge/pkg/render"
)

const version = "0.1.0"

var (
	configPath  = flag.String("config", "", "config file (default: standard locations)")
	barName     = flag.String("bar", "", "bar table to run (default: first in the file)")
	verbose     = flag.Bool("v", false, "mirror the event log to stderr")
	showVersion = flag.Bool("version", false, "print version and exit")
)

var (
	eventLog *log.Logger
	crashLog *log.Logger
)

// initLogs opens the per-bar event log and the shared crash log under the
// state directory. Either falls back to stderr when the file can't be
// opened.
func initLogs(name string, mirror bool) {
	if _, err := paths.EnsureStateDir(); err != nil {
		fmt.Fprintf(os.Stderr, "ledge: %v\n", err)
	}

	f, err := os.OpenFile(paths.StatePath(name+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		eventLog = log.New(os.Stderr, "", log.LstdFlags)
	} else {
		var w io.Writer = f
		if mirror {
			w = io.MultiWriter(f, os.Stderr)
		}
		eventLog = log.New(w, "", log.LstdFlags|log.Lmicroseconds)
	}

	cf, err := os.OpenFile(paths.StatePath("crash.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		crashLog = log.New(os.Stderr, "[CRASH] ", log.LstdFlags)
		return
	}
	crashLog = log.New(cf, "", log.LstdFlags|log.Lmicroseconds)
}

func logCrash(context string, r interface{}) {
	crashLog.Printf("=== CRASH in %s ===", context)
	crashLog.Printf("panic: %v", r)
	crashLog.Printf("stack:\n%s", debug.Stack())
}

func recoverAndLog(context string) {
	if r := recover(); r != nil {
		logCrash(context, r)
		os.Exit(2)
	}
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("ledge " + version)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "ledge: stdout is not a terminal")
		os.Exit(1)
	}

	path := *configPath
	if path == "" {
		var err error
		path, err = paths.ConfigFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "ledge: %v\n", err)
			os.Exit(1)
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ledge: %v\n", err)
		os.Exit(1)
	}
	name, barCfg, err := cfg.SelectBar(*barName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ledge: %v\n", err)
		os.Exit(1)
	}

	initLogs(name, *verbose)
	defer recoverAndLog("main")
	eventLog.Printf("ledge %s: bar %q from %s", version, name, path)

	if err := run(cfg, name, barCfg); err != nil {
		eventLog.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "ledge: %v\n", err)
		os.Exit(1)
	}
	eventLog.Printf("bar %q stopped", name)
}

func run(cfg *config.Config, name string, barCfg config.Bar) error {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	defaults, background, err := barStyle(cfg, barCfg)
	if err != nil {
		return err
	}

	left, center, right, err := panels.FromConfig(cfg, barCfg)
	if err != nil {
		return err
	}

	surface := display.New(barCfg.Height)
	b := bar.New(bar.Options{
		Name:   name,
		Width:  width,
		Height: barCfg.Height,
		Margins: bar.Margins{
			Left:     barCfg.Margins.Left,
			Internal: barCfg.Margins.Internal,
			Right:    barCfg.Margins.Right,
		},
		Background:    background,
		ReverseScroll: barCfg.ReverseScroll,
		Surface:       surface,
		Log:           eventLog,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			eventLog.Printf("caught %v, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// Take the screen before bring-up so the spinner covers slow panels.
	surface.Start()
	defer surface.Stop()

	updates := b.StartPanels(ctx, render.NewHandle(eventLog), defaults, left, center, right)

	var messages chan bar.Message
	if barCfg.IPCEnabled() {
		if _, err := paths.EnsureRuntimeDir(); err != nil {
			return err
		}
		server := ipc.New(paths.SocketPath(name), eventLog)
		if err := server.Start(); err != nil {
			return err
		}
		defer server.Stop()
		eventLog.Printf("ipc listening on %s", server.Path())

		messages = make(chan bar.Message)
		go forwardRequests(ctx, server, messages)
	}

	return b.Run(ctx, cancel, surface.Inputs(), updates, messages)
}

// barStyle resolves the bar's background fill and the default attrs handed
// to every panel. A bar-level attrs table overrides per field; panels with
// no background of their own inherit the bar fill.
func barStyle(cfg *config.Config, barCfg config.Bar) (render.Attrs, render.CellStyle, error) {
	var defaults render.Attrs
	if barCfg.Attrs != "" {
		var err error
		defaults, err = cfg.Attrs[barCfg.Attrs].Resolve()
		if err != nil {
			return render.Attrs{}, render.CellStyle{}, fmt.Errorf("bar attrs %q: %w", barCfg.Attrs, err)
		}
	}

	var background render.CellStyle
	if barCfg.BG != "" {
		bg, err := colors.Normalize(barCfg.BG)
		if err != nil {
			return render.Attrs{}, render.CellStyle{}, fmt.Errorf("bar bg: %w", err)
		}
		background.BG = bg
		if defaults.BG == "" {
			defaults.BG = bg
		}
	}
	return defaults, background, nil
}

// forwardRequests adapts socket requests into event-loop messages. Each
// reply is serialized back to the waiting connection.
func forwardRequests(ctx context.Context, server *ipc.Server, messages chan<- bar.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-server.Requests():
			if !ok {
				return
			}
			msg := bar.Message{
				Text: req.Message,
				Reply: func(resp bar.EventResponse) {
					req.Reply <- resp.JSON()
				},
			}
			select {
			case messages <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}
