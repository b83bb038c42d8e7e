// Package gui assembles the explorer window: a rendered plot, the
// auto-generated control panel beside it, and menus for files,
// parameters and presets.
package gui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"github.com/numex-dev/numex/internal/logger"
	"github.com/numex-dev/numex/internal/ndarray"
	"github.com/numex-dev/numex/internal/presets"
)

const (
	AppName    = "NumEx"
	AppID      = "dev.numex.explorer"
	AppVersion = "0.2.0"
)

// Config carries the explorer settings that come from the config file.
type Config struct {
	PlotWidth       int
	PlotHeight      int
	DefaultColormap string
	WatchFiles      bool
	Debounce        time.Duration
	RecentLimit     int
}

// Explorer owns the Fyne application and the wired view/controller pair.
type Explorer struct {
	fyneApp    fyne.App
	window     fyne.Window
	view       *View
	controller *Controller
	log        logger.Logger
}

// NewExplorer builds the window and wires the components together. The
// store may be nil, which disables presets and the recent-files menu.
func NewExplorer(cfg Config, store *presets.Store, log logger.Logger) *Explorer {
	if log == nil {
		log = &logger.Nop{}
	}

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	view := NewView(window, cfg.PlotWidth, cfg.PlotHeight)
	controller := NewController(cfg, store, log)
	controller.SetView(view)
	view.SetController(controller)

	e := &Explorer{
		fyneApp:    fyneApp,
		window:     window,
		view:       view,
		controller: controller,
		log:        log,
	}
	e.setupWindowEvents()

	log.Info("explorer window created", map[string]interface{}{
		"plot_width":  cfg.PlotWidth,
		"plot_height": cfg.PlotHeight,
		"watch_files": cfg.WatchFiles,
	})
	return e
}

func (e *Explorer) setupWindowEvents() {
	e.window.SetCloseIntercept(func() {
		dialog.ShowConfirm("Exit", "Close NumEx?", func(confirmed bool) {
			if confirmed {
				e.controller.Shutdown()
				e.window.Close()
			}
		}, e.window)
	})
	e.window.SetOnClosed(func() {
		e.controller.Shutdown()
	})
}

// OpenFile queues a file load for when the event loop starts. An empty
// mode auto-detects the display.
func (e *Explorer) OpenFile(path, mode string) {
	e.controller.OpenFileAs(path, mode)
}

// OpenArray shows an in-memory array under the given display name.
func (e *Explorer) OpenArray(arr *ndarray.NDArray, name, mode string) {
	e.controller.OpenArray(arr, name, mode)
}

// Run shows the window and blocks until it closes.
func (e *Explorer) Run() {
	e.view.Show()
	e.fyneApp.Run()
}
