package gui

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"github.com/numex-dev/numex/internal/explore"
	"github.com/numex-dev/numex/internal/logger"
	"github.com/numex-dev/numex/internal/ndarray"
	"github.com/numex-dev/numex/internal/ndio"
	"github.com/numex-dev/numex/internal/params"
	"github.com/numex-dev/numex/internal/presets"
	"github.com/numex-dev/numex/internal/render"
	"github.com/numex-dev/numex/internal/watch"
)

// Controller coordinates the view, the open array and the render loop.
type Controller struct {
	view  *View
	store *presets.Store
	log   logger.Logger
	cfg   Config

	mu       sync.RWMutex
	path     string
	source   string
	arr      *ndarray.NDArray
	mode     explore.Mode
	controls *explore.ControlSet
	params   *params.Set
	watcher  *watch.Watcher

	rendering    bool
	renderQueued bool
}

func NewController(cfg Config, store *presets.Store, log logger.Logger) *Controller {
	if log == nil {
		log = &logger.Nop{}
	}
	return &Controller{cfg: cfg, store: store, log: log}
}

func (c *Controller) SetView(view *View) {
	c.view = view

	titles := make([]string, 0, len(explore.Modes()))
	for _, m := range explore.Modes() {
		titles = append(titles, m.Title())
	}
	view.SetModeOptions(titles, "")

	c.refreshRecentMenu()
	c.refreshPresetMenu()
}

// currentControls snapshots the control set and values for panel rebuilds.
func (c *Controller) currentControls() (*explore.ControlSet, map[string]interface{}) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.params == nil {
		return c.controls, nil
	}
	return c.controls, c.params.Values()
}

// OpenFile loads an array off the UI thread and swaps it into the view.
func (c *Controller) OpenFile(path string) {
	c.OpenFileAs(path, "")
}

// OpenFileAs opens a file with an explicit display mode. An empty or
// unknown mode falls back to auto-detection.
func (c *Controller) OpenFileAs(path, mode string) {
	c.view.SetState("Loading " + filepath.Base(path) + "...")

	go func() {
		arr, err := ndio.Load(path)

		fyne.Do(func() {
			if err != nil {
				c.handleError(err)
				c.view.SetState("Ready")
				return
			}
			c.adoptArray(arr, path, filepath.Base(path), mode)

			if c.store != nil {
				if err := c.store.TouchRecent(path); err != nil {
					c.log.Warning("recent file not recorded", map[string]interface{}{
						"path":  path,
						"error": err.Error(),
					})
				}
				c.refreshRecentMenu()
			}
		})
	}()
}

// OpenArray shows an in-memory array, such as a synthetic dataset. There
// is no backing file, so no watcher and no recent-files entry.
func (c *Controller) OpenArray(arr *ndarray.NDArray, name, mode string) {
	fyne.Do(func() {
		c.adoptArray(arr, "", name, mode)
	})
}

func (c *Controller) adoptArray(arr *ndarray.NDArray, path, source, requestedMode string) {
	mode, cs, err := explore.Select(arr, requestedMode)
	if err != nil {
		c.handleError(err)
		return
	}

	set := params.New(cs)
	if c.cfg.DefaultColormap != "" {
		for _, name := range []string{"cmap-0", "cmap-1"} {
			if _, ok := cs.Get(name); ok {
				set.Put(name, c.cfg.DefaultColormap)
			}
		}
	}

	c.mu.Lock()
	c.path = path
	c.source = source
	c.arr = arr
	c.mode = mode
	c.controls = cs
	c.params = set
	c.mu.Unlock()

	c.log.Info("array opened", map[string]interface{}{
		"source": source,
		"shape":  fmt.Sprintf("%v", arr.Shape()),
		"dtype":  arr.DType(),
		"mode":   string(mode),
	})

	c.restartWatcher(path)

	c.view.SetSource(source)
	c.view.SetShape(shapeSummary(arr))
	c.view.SetTitle(fmt.Sprintf("NumEx: %s %v [%s]", source, arr.Shape(), mode.Title()))
	c.view.SetModeOptions(modeTitles(), mode.Title())
	c.view.UpdateControlPanel(c)
	c.scheduleRender()
}

// Reload re-reads the backing file, keeping the current mode and any
// parameter values that still apply to the new shape.
func (c *Controller) Reload() {
	c.mu.RLock()
	path := c.path
	mode := c.mode
	var old map[string]interface{}
	if c.params != nil {
		old = c.params.Values()
	}
	c.mu.RUnlock()

	if path == "" {
		return
	}

	go func() {
		arr, err := ndio.Load(path)

		fyne.Do(func() {
			if err != nil {
				c.handleError(fmt.Errorf("reload: %w", err))
				return
			}
			c.adoptArray(arr, path, filepath.Base(path), string(mode))
			c.applyValues(old)
			c.view.SetState("Reloaded")
		})
	}()
}

// ChangeModeByTitle maps a display-mode title from the select widget back
// to its mode and rebuilds the controls for it.
func (c *Controller) ChangeModeByTitle(title string) {
	for _, m := range explore.Modes() {
		if m.Title() == title {
			c.ChangeMode(string(m))
			return
		}
	}
}

func (c *Controller) ChangeMode(mode string) {
	c.mu.RLock()
	arr := c.arr
	var old map[string]interface{}
	if c.params != nil {
		old = c.params.Values()
	}
	c.mu.RUnlock()

	if arr == nil {
		return
	}

	selected, cs, err := explore.Select(arr, mode)
	if err != nil {
		c.handleError(err)
		return
	}

	c.mu.Lock()
	c.mode = selected
	c.controls = cs
	c.params = params.New(cs)
	source := c.source
	c.mu.Unlock()

	c.applyValues(old)

	c.log.Debug("display mode changed", map[string]interface{}{
		"mode": string(selected),
	})

	c.view.SetTitle(fmt.Sprintf("NumEx: %s %v [%s]", source, arr.Shape(), selected.Title()))
	c.view.UpdateControlPanel(c)
	c.scheduleRender()
}

// applyValues carries values whose controls survived a rebuild. Names
// with no matching control are dropped silently.
func (c *Controller) applyValues(values map[string]interface{}) {
	c.mu.RLock()
	set := c.params
	cs := c.controls
	c.mu.RUnlock()
	if set == nil {
		return
	}
	for name, value := range values {
		if _, ok := cs.Get(name); !ok {
			continue
		}
		if err := set.Put(name, value); err != nil {
			c.log.Debug("carried value rejected", map[string]interface{}{
				"parameter": name,
				"error":     err.Error(),
			})
		}
	}
}

func (c *Controller) UpdateParameter(name string, value interface{}) {
	c.mu.RLock()
	set := c.params
	c.mu.RUnlock()
	if set == nil {
		return
	}

	if err := set.Put(name, value); err != nil {
		c.log.Warning("parameter update rejected", map[string]interface{}{
			"parameter": name,
			"error":     err.Error(),
		})
		return
	}
	c.scheduleRender()
}

func (c *Controller) ResetParameters() {
	c.mu.RLock()
	set := c.params
	c.mu.RUnlock()
	if set == nil {
		return
	}

	set.Reset()
	c.view.UpdateControlPanel(c)
	c.scheduleRender()
}

func (c *Controller) ImportParameters(r io.Reader) {
	c.mu.RLock()
	set := c.params
	c.mu.RUnlock()
	if set == nil {
		return
	}

	if err := set.Import(r); err != nil {
		c.handleError(err)
		return
	}
	c.view.UpdateControlPanel(c)
	c.view.SetState("Parameters imported")
	c.scheduleRender()
}

func (c *Controller) ExportParameters(w io.Writer) {
	c.mu.RLock()
	set := c.params
	c.mu.RUnlock()
	if set == nil {
		return
	}

	if err := set.Export(w); err != nil {
		c.handleError(err)
		return
	}
	c.view.SetState("Parameters exported")
}

// Presets.

func (c *Controller) SavePreset(name string) {
	c.mu.RLock()
	set := c.params
	mode := c.mode
	c.mu.RUnlock()
	if set == nil || c.store == nil {
		return
	}

	if _, err := c.store.SavePreset(name, string(mode), set.Values()); err != nil {
		c.handleError(err)
		return
	}
	c.log.Info("preset saved", map[string]interface{}{"name": name})
	c.view.SetState("Preset saved: " + name)
	c.refreshPresetMenu()
}

func (c *Controller) LoadPreset(name string) {
	if c.store == nil {
		return
	}
	preset, err := c.store.GetPreset(name)
	if err != nil {
		c.handleError(err)
		return
	}

	c.ChangeMode(preset.Mode)
	c.applyValues(preset.Params)
	c.view.UpdateControlPanel(c)
	c.view.SetState("Preset loaded: " + name)
	c.scheduleRender()
}

func (c *Controller) refreshRecentMenu() {
	if c.store == nil {
		return
	}
	recent, err := c.store.ListRecent(c.cfg.RecentLimit)
	if err != nil {
		c.log.Warning("recent files unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	paths := make([]string, 0, len(recent))
	for _, rf := range recent {
		paths = append(paths, rf.Path)
	}
	c.view.SetRecentFiles(paths)
}

func (c *Controller) refreshPresetMenu() {
	if c.store == nil {
		return
	}
	all, err := c.store.ListPresets()
	if err != nil {
		c.log.Warning("presets unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	names := make([]string, 0, len(all))
	for _, p := range all {
		names = append(names, p.Name)
	}
	c.view.SetPresets(names)
}

// Rendering. One render runs at a time; parameter changes arriving while
// a frame is in flight collapse into a single follow-up render.

func (c *Controller) scheduleRender() {
	c.mu.Lock()
	if c.rendering {
		c.renderQueued = true
		c.mu.Unlock()
		return
	}
	c.rendering = true
	c.mu.Unlock()

	go c.renderLoop()
}

func (c *Controller) renderLoop() {
	for {
		c.mu.RLock()
		arr := c.arr
		mode := c.mode
		var values map[string]interface{}
		if c.params != nil {
			values = c.params.Values()
		}
		c.mu.RUnlock()

		fyne.Do(func() {
			c.view.SetState("Rendering...")
		})

		start := time.Now()
		img, err := render.Frame(arr, string(mode), values, c.cfg.PlotWidth, c.cfg.PlotHeight)
		elapsed := time.Since(start)

		fyne.Do(func() {
			c.view.SetPlot(img)
			if err != nil {
				c.view.SetState("Render failed: " + err.Error())
				c.log.Warning("render failed", map[string]interface{}{
					"mode":  string(mode),
					"error": err.Error(),
				})
			} else {
				c.view.SetRenderTime(elapsed)
			}
		})

		c.mu.Lock()
		if !c.renderQueued {
			c.rendering = false
			c.mu.Unlock()
			return
		}
		c.renderQueued = false
		c.mu.Unlock()
	}
}

// File watching.

func (c *Controller) restartWatcher(path string) {
	c.mu.Lock()
	old := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if old != nil {
		old.Stop()
	}

	if path == "" || !c.cfg.WatchFiles {
		return
	}

	w, err := watch.New(watchTargets(path), c.cfg.Debounce, c.log, func() {
		fyne.Do(c.Reload)
	})
	if err != nil {
		c.log.Warning("file watching disabled", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}
	if err := w.Start(context.Background()); err != nil {
		c.log.Warning("file watching disabled", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()
}

// watchTargets expands a dataset path into every file that backs it. A
// header-and-data pair changes as two writes, and either one matters.
func watchTargets(path string) []string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".cfl" || ext == ".hdr" {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		return []string{base + ".cfl", base + ".hdr"}
	}
	return []string{path}
}

func (c *Controller) handleError(err error) {
	c.log.Error("explorer error", err, nil)
	fyne.Do(func() {
		c.view.ShowError(err)
	})
}

func (c *Controller) Shutdown() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if w != nil {
		w.Stop()
	}
	c.log.Info("explorer shutdown", nil)
}

func shapeSummary(arr *ndarray.NDArray) string {
	return fmt.Sprintf("%s %v", arr.DType(), arr.Shape())
}

func modeTitles() []string {
	titles := make([]string, 0, len(explore.Modes()))
	for _, m := range explore.Modes() {
		titles = append(titles, m.Title())
	}
	return titles
}
