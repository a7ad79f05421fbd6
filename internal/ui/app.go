package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/ui/styles"
	"github.com/taskflow/taskflow/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewDashboard View = iota
	ViewTasks
	ViewProjects
)

// view is what the app needs from each screen
type view interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
	Capturing() bool
	Restyle()
}

type App struct {
	store       *store.Store
	logger      zerolog.Logger
	currentView View
	dashboard   *views.DashboardView
	taskList    *views.TaskListView
	projectList *views.ProjectListView
	width       int
	height      int
}

// NewApp creates the application model. The stored theme preference is
// applied before any view builds its styles.
func NewApp(st *store.Store, logger zerolog.Logger) *App {
	styles.SetCurrent(st.Theme())

	return &App{
		store:       st,
		logger:      logger,
		currentView: ViewDashboard,
		dashboard:   views.NewDashboardView(st),
		taskList:    views.NewTaskListView(st, logger),
		projectList: views.NewProjectListView(st, logger),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.dashboard.Init(), a.taskList.Init(), a.projectList.Init())
}

func (a *App) active() view {
	switch a.currentView {
	case ViewTasks:
		return a.taskList
	case ViewProjects:
		return a.projectList
	}
	return a.dashboard
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// All views track the window size, not just the visible one
		a.dashboard.Update(msg)
		a.taskList.Update(msg)
		a.projectList.Update(msg)
		return a, nil

	case tea.KeyMsg:
		if !a.active().Capturing() {
			switch msg.String() {
			case "q", "ctrl+c":
				a.logger.Info().Msg("shutting down")
				return a, tea.Quit
			case "1":
				a.currentView = ViewDashboard
				return a, nil
			case "2":
				a.currentView = ViewTasks
				return a, nil
			case "3":
				a.currentView = ViewProjects
				return a, nil
			case "t":
				return a, a.toggleTheme()
			}
		}
	}

	_, cmd := a.active().Update(msg)
	return a, cmd
}

func (a *App) toggleTheme() tea.Cmd {
	theme := "dark"
	if a.store.Theme() == "dark" {
		theme = "light"
	}
	if err := a.store.SetTheme(theme); err != nil {
		a.logger.Error().Err(err).Msg("save theme")
		return nil
	}

	styles.SetCurrent(theme)
	a.dashboard.Restyle()
	a.taskList.Restyle()
	a.projectList.Restyle()
	return nil
}

func (a *App) View() string {
	body := a.active().View()
	if a.active().Capturing() {
		return body
	}
	return body + "\n" + a.footer()
}

func (a *App) footer() string {
	s := styles.NewStyles()
	return s.Help.Render(
		s.HelpKey.Render("1") + " dashboard  " +
			s.HelpKey.Render("2") + " tasks  " +
			s.HelpKey.Render("3") + " projects  " +
			s.HelpKey.Render("t") + " theme  " +
			s.HelpKey.Render("q") + " quit",
	)
}
