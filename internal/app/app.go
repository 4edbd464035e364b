// internal/app/app.go
package app

import (
	"fmt"

	"github.com/bethropolis/quill/internal/clipboard"
	"github.com/bethropolis/quill/internal/config"
	"github.com/bethropolis/quill/internal/event"
	"github.com/bethropolis/quill/internal/gateway"
	"github.com/bethropolis/quill/internal/highlight"
	"github.com/bethropolis/quill/internal/input"
	"github.com/bethropolis/quill/internal/logger"
	"github.com/bethropolis/quill/internal/plugin"
	"github.com/bethropolis/quill/internal/session"
	"github.com/bethropolis/quill/internal/statusbar"
	"github.com/bethropolis/quill/internal/theme"
	"github.com/bethropolis/quill/internal/tui"
	"github.com/gdamore/tcell/v2"
)

const taskQueueSize = 16

// Options configure a new App. Only Config is required.
type Options struct {
	Config   *config.Config
	FilePath string          // opened on start when set
	Screen   tcell.Screen    // nil opens the terminal
	Gateway  session.Gateway // nil uses native dialogs and the OS filesystem
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	controller    *session.Controller
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	editorAPI     *appEditorAPI
	input         *input.InputProcessor
	clipboard     *clipboard.Clipboard
	themeManager  *theme.Manager
	highlights    *highlight.Manager
	activeTheme   *theme.Theme // UI theme plus syntax styles of the highlight theme
	viewport      tui.Viewport
	filePath      string

	tasks         chan func()
	redrawRequest chan struct{}
	quit          bool
}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	cfg := opts.Config

	themesDir, err := config.ThemesDir()
	if err != nil {
		logger.Warnf("App: no themes directory: %v", err)
		themesDir = ""
	}
	themeManager := theme.NewManager(themesDir)
	if err := themeManager.SetTheme(cfg.Editor.UITheme); err != nil {
		logger.Warnf("App: %v, using '%s'", err, themeManager.Current().Name)
	}

	var tuiManager *tui.TUI
	baseStyle := themeManager.Current().GetStyle("Default")
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, baseStyle)
	} else {
		tuiManager, err = tui.New(baseStyle)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	gw := opts.Gateway
	if gw == nil {
		gw = gateway.New(gateway.NativePicker{}, gateway.OSFileSystem{})
	}

	eventManager := event.NewManager()
	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		input:         input.NewInputProcessor(),
		clipboard:     clipboard.New(cfg.Editor.SystemClipboard),
		themeManager:  themeManager,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		filePath:      opts.FilePath,
		tasks:         make(chan func(), taskQueueSize),
		redrawRequest: make(chan struct{}, 1),
	}
	a.controller = session.New(session.Options{
		Gateway: gw,
		Events:  eventManager,
		Theme:   cfg.Editor.HighlightTheme,
	})
	a.highlights = highlight.NewManager(highlight.NewHighlighter(), a.requestRedraw)
	a.editorAPI = newEditorAPI(a)
	a.applyTheme()

	a.subscribe()

	if err := registerPlugins(a.pluginManager, cfg); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	return a, nil
}

// Run starts the application's main loop. It returns when the user quits.
func (a *App) Run() error {
	defer a.shutdown()

	screenEvents := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)
	go a.pollEvents(screenEvents, done)

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	if a.filePath != "" {
		a.controller.Update(session.OpenPathRequested{Path: a.filePath})
	}
	a.statusBar.SetTemporaryMessage("Quill - Ctrl+O Open | Ctrl+S Save | F12 Save As | Ctrl+W Quit")
	a.requestHighlight()
	a.draw()

	for !a.quit {
		select {
		case ev := <-screenEvents:
			a.handleScreenEvent(ev)
		case ev := <-a.controller.Completions():
			a.controller.Update(ev)
		case task := <-a.tasks:
			task()
		case <-a.redrawRequest:
		}
		if !a.quit {
			a.draw()
		}
	}

	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	if a.controller.Session().Dirty() {
		logger.Warnf("Exited with unsaved changes.")
	}
	logger.Infof("Exiting application.")
	return nil
}

// pollEvents forwards screen events until the screen is closed.
func (a *App) pollEvents(out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (a *App) handleScreenEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
	case *tcell.EventKey:
		a.handleKey(e)
	}
}

// shutdown stops background work and releases the terminal.
func (a *App) shutdown() {
	if err := a.pluginManager.ShutdownPlugins(); err != nil {
		logger.Warnf("App: plugin shutdown: %v", err)
	}
	a.highlights.Shutdown()
	a.controller.Shutdown()
	a.tuiManager.Close()
}
