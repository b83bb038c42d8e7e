package gui

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/numex-dev/numex/internal/gui/widgets"
	"github.com/numex-dev/numex/internal/ndio"
)

// View handles all UI components and their layout.
type View struct {
	window     fyne.Window
	controller *Controller

	controlPanel *widgets.ControlPanel
	plotDisplay  *widgets.PlotDisplay
	statusBar    *widgets.StatusBar

	recentMenu  *fyne.Menu
	presetsMenu *fyne.Menu
	mainMenu    *fyne.MainMenu

	mainContainer *fyne.Container
}

func NewView(window fyne.Window, plotWidth, plotHeight int) *View {
	view := &View{window: window}

	view.controlPanel = widgets.NewControlPanel()
	view.plotDisplay = widgets.NewPlotDisplay(plotWidth, plotHeight)
	view.statusBar = widgets.NewStatusBar()

	view.mainContainer = container.NewBorder(
		nil,
		view.statusBar.GetContainer(),
		nil,
		container.NewVScroll(view.controlPanel.GetContainer()),
		view.plotDisplay.GetContainer(),
	)

	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
	v.setupMenus()
}

func (v *View) setupEventHandlers() {
	v.controlPanel.SetChangeHandler(v.controller.UpdateParameter)
	v.controlPanel.SetModeHandler(v.controller.ChangeModeByTitle)
}

func (v *View) setupMenus() {
	v.recentMenu = fyne.NewMenu("Open Recent")
	recentItem := fyne.NewMenuItem("Open Recent", nil)
	recentItem.ChildMenu = v.recentMenu

	exitItem := fyne.NewMenuItem("Exit", v.confirmExit)
	exitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", v.promptOpenFile),
		recentItem,
		fyne.NewMenuItemSeparator(),
		exitItem,
	)

	v.presetsMenu = fyne.NewMenu("Load Preset")
	presetsItem := fyne.NewMenuItem("Load Preset", nil)
	presetsItem.ChildMenu = v.presetsMenu

	paramsMenu := fyne.NewMenu("Parameters",
		fyne.NewMenuItem("Reset", v.controller.ResetParameters),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import...", v.promptImportParameters),
		fyne.NewMenuItem("Export...", v.promptExportParameters),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Preset...", v.promptSavePreset),
		presetsItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", v.showAbout),
	)

	v.mainMenu = fyne.NewMainMenu(fileMenu, paramsMenu, helpMenu)
	v.window.SetMainMenu(v.mainMenu)
}

// Dialogs.

func (v *View) confirmExit() {
	dialog.ShowConfirm("Exit", "Close NumEx?", func(confirmed bool) {
		if confirmed {
			v.controller.Shutdown()
			v.window.Close()
		}
	}, v.window)
}

func (v *View) promptOpenFile() {
	exts := ndio.Extensions()
	dotted := make([]string, len(exts))
	for i, ext := range exts {
		dotted[i] = "." + ext
	}

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			v.ShowError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		v.controller.OpenFile(path)
	}, v.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(dotted))
	fileDialog.Show()
}

func (v *View) promptImportParameters() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			v.ShowError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		v.controller.ImportParameters(reader)
	}, v.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fileDialog.Show()
}

func (v *View) promptExportParameters() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			v.ShowError(err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		v.controller.ExportParameters(writer)
	}, v.window)
}

func (v *View) promptSavePreset() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Preset name")

	form := container.NewVBox(
		widget.NewLabel("Save the current parameters as a preset:"),
		entry,
	)

	dialog.ShowCustomConfirm("Save Preset", "Save", "Cancel",
		form, func(confirmed bool) {
			if confirmed && entry.Text != "" {
				v.controller.SavePreset(entry.Text)
			}
		}, v.window)
}

func (v *View) showAbout() {
	dialog.ShowInformation("About "+AppName,
		AppName+" "+AppVersion+"\n\n"+
			"NumEx explores n-dimensional numerical arrays.\n"+
			"Open an array file and tune the view from the control panel.",
		v.window)
}

// Public interface for the controller.

func (v *View) SetPlot(img image.Image) {
	v.plotDisplay.SetImage(img)
}

func (v *View) UpdateControlPanel(controller *Controller) {
	cs, values := controller.currentControls()
	v.controlPanel.UpdateControls(cs, values)
}

func (v *View) SetModeOptions(options []string, selected string) {
	v.controlPanel.SetModes(options, selected)
}

func (v *View) SetRecentFiles(paths []string) {
	items := make([]*fyne.MenuItem, 0, len(paths))
	for _, path := range paths {
		p := path
		items = append(items, fyne.NewMenuItem(p, func() {
			v.controller.OpenFile(p)
		}))
	}
	v.recentMenu.Items = items
	if v.mainMenu != nil {
		v.mainMenu.Refresh()
	}
}

func (v *View) SetPresets(names []string) {
	items := make([]*fyne.MenuItem, 0, len(names))
	for _, name := range names {
		n := name
		items = append(items, fyne.NewMenuItem(n, func() {
			v.controller.LoadPreset(n)
		}))
	}
	v.presetsMenu.Items = items
	if v.mainMenu != nil {
		v.mainMenu.Refresh()
	}
}

func (v *View) SetTitle(title string) {
	v.window.SetTitle(title)
}

func (v *View) SetSource(name string) { v.statusBar.SetSource(name) }

func (v *View) SetShape(shape string) { v.statusBar.SetShape(shape) }

func (v *View) SetState(state string) { v.statusBar.SetState(state) }

func (v *View) SetRenderTime(d time.Duration) { v.statusBar.SetRenderTime(d) }

func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) GetWindow() fyne.Window {
	return v.window
}

func (v *View) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
