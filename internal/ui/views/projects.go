package views

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow/internal/models"
	"github.com/taskflow/taskflow/internal/stats"
	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/ui/keys"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

type projectItem struct {
	project  models.Project
	progress stats.Progress
}

func (i projectItem) Title() string       { return i.project.Name }
func (i projectItem) Description() string { return i.project.Description }
func (i projectItem) FilterValue() string { return i.project.Name }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                               { return 2 }
func (d projectDelegate) Spacing() int                              { return 1 }
func (d projectDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	marker := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.project.Color)).
		Render("●")

	line := fmt.Sprintf("%s %s", marker, p.project.Name)
	detail := fmt.Sprintf("%d tasks · %d%% complete", p.progress.Total, p.progress.Percent)
	if p.project.Deadline != nil {
		detail += " · due " + p.project.Deadline.Format("Jan 2")
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(line), descStyle.Render(detail))
}

// ProjectListView shows all projects with their task progress
type ProjectListView struct {
	store    *store.Store
	logger   zerolog.Logger
	list     list.Model
	delegate *projectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	// Edit form state
	editing      bool
	editID       int64 // 0 while creating
	editName     textinput.Model
	editDesc     textinput.Model
	editColor    textinput.Model
	editDeadline textinput.Model
	focusIdx     int // 0=name 1=desc 2=color 3=deadline 4=save

	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	notice    string
	noticeBad bool
}

const projectFormFields = 5

// NewProjectListView creates the project list view
func NewProjectListView(st *store.Store, logger zerolog.Logger) *ProjectListView {
	s := styles.NewStyles()

	editName := textinput.New()
	editName.Placeholder = "Project name"
	editName.CharLimit = 100

	editDesc := textinput.New()
	editDesc.Placeholder = "Description (optional)"
	editDesc.CharLimit = 200

	editColor := textinput.New()
	editColor.Placeholder = store.DefaultProjectColor
	editColor.CharLimit = 7

	editDeadline := textinput.New()
	editDeadline.Placeholder = "Deadline (YYYY-MM-DD, optional)"
	editDeadline.CharLimit = 10

	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Projects"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	v := &ProjectListView{
		store:        st,
		logger:       logger,
		list:         l,
		delegate:     delegate,
		styles:       s,
		keys:         keys.DefaultKeyMap(),
		editName:     editName,
		editDesc:     editDesc,
		editColor:    editColor,
		editDeadline: editDeadline,
	}
	v.refresh()
	return v
}

// Restyle rebuilds styles after a theme change
func (v *ProjectListView) Restyle() {
	v.styles = styles.NewStyles()
	v.delegate.styles = v.styles
	v.list.Styles.Title = v.styles.Title
}

// Capturing reports whether the view is consuming raw text input
func (v *ProjectListView) Capturing() bool {
	return v.editing || v.confirmingDelete || v.list.FilterState() == list.Filtering
}

func (v *ProjectListView) Init() tea.Cmd {
	return nil
}

func (v *ProjectListView) refresh() {
	tasks := v.store.Tasks()
	projects := v.store.Projects()
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{
			project:  p,
			progress: stats.ProjectProgress(tasks, p.ID),
		}
	}
	v.list.SetItems(items)
}

func (v *ProjectListView) say(msg string) {
	v.notice = msg
	v.noticeBad = false
}

func (v *ProjectListView) complain(err error) {
	v.notice = err.Error()
	v.noticeBad = true
	v.logger.Warn().Err(err).Msg("project operation rejected")
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case tea.KeyMsg:
		v.notice = ""

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}

		if v.list.FilterState() != list.Filtering {
			switch {
			case key.Matches(msg, v.keys.New):
				v.openForm(nil)
				return v, textinput.Blink
			case key.Matches(msg, v.keys.Edit):
				if item, ok := v.list.SelectedItem().(projectItem); ok {
					v.openForm(&item.project)
					return v, textinput.Blink
				}
			case key.Matches(msg, v.keys.Delete):
				if item, ok := v.list.SelectedItem().(projectItem); ok {
					v.confirmingDelete = true
					v.deleteTargetID = item.project.ID
					v.deleteTargetName = item.project.Name
					return v, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := v.store.DeleteProject(v.deleteTargetID); err != nil {
			v.complain(err)
		} else {
			v.say("Project deleted, its tasks were unassigned")
		}
		v.confirmingDelete = false
		v.refresh()
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *ProjectListView) openForm(p *models.Project) {
	v.editing = true
	v.focusIdx = 0
	v.editID = 0

	v.editName.Reset()
	v.editDesc.Reset()
	v.editColor.Reset()
	v.editDeadline.Reset()

	if p != nil {
		v.editID = p.ID
		v.editName.SetValue(p.Name)
		v.editDesc.SetValue(p.Description)
		v.editColor.SetValue(p.Color)
		if p.Deadline != nil {
			v.editDeadline.SetValue(p.Deadline.Format("2006-01-02"))
		}
	}

	v.updateFormFocus()
}

func (v *ProjectListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v.saveForm()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + projectFormFields - 1) % projectFormFields
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % projectFormFields
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx == projectFormFields-1 {
			return v.saveForm()
		}
		v.focusIdx++
		v.updateFormFocus()
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.editName, cmd = v.editName.Update(msg)
	case 1:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case 2:
		v.editColor, cmd = v.editColor.Update(msg)
	case 3:
		v.editDeadline, cmd = v.editDeadline.Update(msg)
	}
	return v, cmd
}

func (v *ProjectListView) saveForm() (tea.Model, tea.Cmd) {
	in := store.ProjectInput{
		Name:        v.editName.Value(),
		Description: v.editDesc.Value(),
		Color:       strings.TrimSpace(v.editColor.Value()),
	}

	if raw := strings.TrimSpace(v.editDeadline.Value()); raw != "" {
		deadline, err := time.Parse("2006-01-02", raw)
		if err != nil {
			v.complain(fmt.Errorf("invalid deadline: %s", raw))
			return v, nil
		}
		in.Deadline = &deadline
	}

	var err error
	if v.editID != 0 {
		_, err = v.store.UpdateProject(v.editID, in)
	} else {
		_, err = v.store.CreateProject(in)
	}
	if err != nil {
		v.complain(err)
		return v, nil
	}

	if v.editID != 0 {
		v.say("Project updated successfully")
	} else {
		v.say("Project created successfully")
	}
	v.editing = false
	v.refresh()
	return v, nil
}

func (v *ProjectListView) updateFormFocus() {
	v.editName.Blur()
	v.editDesc.Blur()
	v.editColor.Blur()
	v.editDeadline.Blur()

	switch v.focusIdx {
	case 0:
		v.editName.Focus()
	case 1:
		v.editDesc.Focus()
	case 2:
		v.editColor.Focus()
	case 3:
		v.editDeadline.Focus()
	}
}

// View renders the view
func (v *ProjectListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderForm()
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderNotice() + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Projects"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first project"),
		"",
		s.ButtonPrimary.Render(" New Project "),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	formTitle := "New Project"
	if v.editID != 0 {
		formTitle = "Edit Project"
	}

	field := func(idx int, label string, input textinput.Model) string {
		style := s.Input
		if v.focusIdx == idx {
			style = s.InputFocused
		}
		return label + "\n" + style.Width(inputWidth).Render(input.View())
	}

	saveStyle := s.Button
	if v.focusIdx == projectFormFields-1 {
		saveStyle = s.ButtonFocused
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		field(0, "Name:", v.editName),
		field(1, "Description:", v.editDesc),
		field(2, "Color:", v.editColor),
		field(3, "Deadline:", v.editDeadline),
		"",
		saveStyle.Render(" Save "),
		v.renderNotice(),
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed", v.deleteTargetName)),
		s.TitleMuted.Render("Tasks assigned to it will be kept and unassigned"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderNotice() string {
	if v.notice == "" {
		return ""
	}
	if v.noticeBad {
		return v.styles.StatusNo.Render(v.notice) + "\n"
	}
	return v.styles.StatusOK.Render(v.notice) + "\n"
}

func (v *ProjectListView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s del • %s filter",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("/"),
		),
	)
}
