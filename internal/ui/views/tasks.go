package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow/internal/models"
	"github.com/taskflow/taskflow/internal/query"
	"github.com/taskflow/taskflow/internal/store"
	"github.com/taskflow/taskflow/internal/ui/keys"
	"github.com/taskflow/taskflow/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

var statusCycle = []query.Status{
	query.StatusAll, query.StatusPending, query.StatusCompleted, query.StatusOverdue,
}

var priorityCycle = []models.Priority{
	"", models.PriorityHigh, models.PriorityMedium, models.PriorityLow,
}

var sortCycle = []query.Sort{
	query.SortCreated, query.SortPriority, query.SortDueDate, query.SortAlphabetical,
}

// Form focus positions, in tab order
const (
	focusTitle = iota
	focusDesc
	focusPriority
	focusProject
	focusDue
	focusEstimate
	focusTags
	focusSave
	formFields
)

// TaskListView shows the filtered task list and hosts the edit form
type TaskListView struct {
	store  *store.Store
	logger zerolog.Logger
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	visible []models.Task
	cursor  int
	scrollY int

	params      query.Params
	searchInput textinput.Model
	searching   bool

	// Edit form state
	editing        bool
	editID         int64 // 0 while creating
	editTitle      textinput.Model
	editDesc       textarea.Model
	editDue        textinput.Model
	editEstimate   textinput.Model
	editTags       textinput.Model
	editPriority   models.Priority
	editProjectIdx int // index into projects, -1 means unassigned
	projects       []models.Project
	focusIdx       int

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	notice    string
	noticeBad bool
}

// NewTaskListView creates the task list view
func NewTaskListView(st *store.Store, logger zerolog.Logger) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	editTitle := textinput.New()
	editTitle.Placeholder = "Task title"
	editTitle.CharLimit = 200

	editDesc := textarea.New()
	editDesc.Placeholder = "Description"
	editDesc.CharLimit = 1000
	editDesc.SetWidth(50)
	editDesc.SetHeight(3)
	editDesc.ShowLineNumbers = false

	editDue := textinput.New()
	editDue.Placeholder = "Due date (YYYY-MM-DD)"
	editDue.CharLimit = 10

	editEstimate := textinput.New()
	editEstimate.Placeholder = "Estimate (hours)"
	editEstimate.CharLimit = 6

	editTags := textinput.New()
	editTags.Placeholder = "Tags (comma separated)"
	editTags.CharLimit = 200

	v := &TaskListView{
		store:        st,
		logger:       logger,
		styles:       styles.NewStyles(),
		keys:         keys.DefaultKeyMap(),
		params:       query.Params{Status: query.StatusAll, Sort: query.SortCreated},
		searchInput:  search,
		editTitle:    editTitle,
		editDesc:     editDesc,
		editDue:      editDue,
		editEstimate: editEstimate,
		editTags:     editTags,
	}
	v.refresh()
	return v
}

// Restyle rebuilds styles after a theme change
func (v *TaskListView) Restyle() {
	v.styles = styles.NewStyles()
}

// Capturing reports whether the view is consuming raw text input
func (v *TaskListView) Capturing() bool {
	return v.searching || v.editing || v.confirmingDelete
}

func (v *TaskListView) Init() tea.Cmd {
	return nil
}

func (v *TaskListView) refresh() {
	v.params.Search = v.searchInput.Value()
	v.visible = query.Filter(v.store.Tasks(), v.params, time.Now())
	v.cursor = clamp(v.cursor, 0, max(len(v.visible)-1, 0))
}

func (v *TaskListView) say(msg string) {
	v.notice = msg
	v.noticeBad = false
}

func (v *TaskListView) complain(err error) {
	v.notice = err.Error()
	v.noticeBad = true
	v.logger.Warn().Err(err).Msg("task operation rejected")
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		v.notice = ""

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.searching {
			return v.updateSearching(msg)
		}
		return v.updateBrowsing(msg)
	}

	return v, nil
}

func (v *TaskListView) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Up):
		v.cursor = clamp(v.cursor-1, 0, max(len(v.visible)-1, 0))
	case key.Matches(msg, v.keys.Down):
		v.cursor = clamp(v.cursor+1, 0, max(len(v.visible)-1, 0))

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.params.Status = cycle(statusCycle, v.params.Status)
		v.refresh()
	case key.Matches(msg, v.keys.Prio):
		v.params.Priority = cycle(priorityCycle, v.params.Priority)
		v.refresh()
	case key.Matches(msg, v.keys.Sort):
		v.params.Sort = cycle(sortCycle, v.params.Sort)
		v.refresh()

	case key.Matches(msg, v.keys.Toggle):
		if t, ok := v.selected(); ok {
			toggled, err := v.store.ToggleTask(t.ID)
			if err != nil {
				v.complain(err)
				return v, nil
			}
			if toggled.Completed {
				v.say("Task completed!")
			} else {
				v.say("Task marked as pending")
			}
			v.refresh()
		}

	case key.Matches(msg, v.keys.New):
		v.openForm(nil)
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Edit):
		if t, ok := v.selected(); ok {
			v.openForm(&t)
			return v, textinput.Blink
		}

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.Title
		}
	}

	return v, nil
}

func (v *TaskListView) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter):
		v.searching = false
		v.searchInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.searchInput, cmd = v.searchInput.Update(msg)
	v.refresh()
	return v, cmd
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := v.store.DeleteTask(v.deleteTargetID); err != nil {
			v.complain(err)
		} else {
			v.say("Task deleted")
		}
		v.confirmingDelete = false
		v.refresh()
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

// openForm prepares the edit form, prefilled when editing an existing task
func (v *TaskListView) openForm(t *models.Task) {
	v.editing = true
	v.projects = v.store.Projects()
	v.focusIdx = focusTitle

	v.editTitle.Reset()
	v.editDesc.Reset()
	v.editDue.Reset()
	v.editEstimate.Reset()
	v.editTags.Reset()
	v.editPriority = models.PriorityMedium
	v.editProjectIdx = -1
	v.editID = 0

	if t != nil {
		v.editID = t.ID
		v.editTitle.SetValue(t.Title)
		v.editDesc.SetValue(t.Description)
		v.editPriority = t.Priority
		if t.DueDate != nil {
			v.editDue.SetValue(t.DueDate.Format("2006-01-02"))
		}
		if t.Estimate != nil {
			v.editEstimate.SetValue(strconv.FormatFloat(*t.Estimate, 'f', -1, 64))
		}
		v.editTags.SetValue(strings.Join(t.Tags, ", "))
		if t.ProjectID != nil {
			for i, p := range v.projects {
				if p.ID == *t.ProjectID {
					v.editProjectIdx = i
					break
				}
			}
		}
	}

	v.updateFormFocus()
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v.saveForm()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + formFields - 1) % formFields
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % formFields
		v.updateFormFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.focusIdx == focusSave {
			return v.saveForm()
		}
		if v.focusIdx != focusDesc {
			v.focusIdx++
			v.updateFormFocus()
			return v, nil
		}
	}

	// Priority and project fields cycle with left/right or space
	switch v.focusIdx {
	case focusPriority:
		switch msg.String() {
		case "left", "right", " ", "h", "l":
			v.editPriority = cycle([]models.Priority{
				models.PriorityLow, models.PriorityMedium, models.PriorityHigh,
			}, v.editPriority)
		}
		return v, nil
	case focusProject:
		switch msg.String() {
		case "right", " ", "l":
			v.editProjectIdx++
			if v.editProjectIdx >= len(v.projects) {
				v.editProjectIdx = -1
			}
		case "left", "h":
			v.editProjectIdx--
			if v.editProjectIdx < -1 {
				v.editProjectIdx = len(v.projects) - 1
			}
		}
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case focusTitle:
		v.editTitle, cmd = v.editTitle.Update(msg)
	case focusDesc:
		v.editDesc, cmd = v.editDesc.Update(msg)
	case focusDue:
		v.editDue, cmd = v.editDue.Update(msg)
	case focusEstimate:
		v.editEstimate, cmd = v.editEstimate.Update(msg)
	case focusTags:
		v.editTags, cmd = v.editTags.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) saveForm() (tea.Model, tea.Cmd) {
	in := store.TaskInput{
		Title:       v.editTitle.Value(),
		Description: v.editDesc.Value(),
		Priority:    v.editPriority,
		Tags:        models.ParseTags(v.editTags.Value()),
	}

	if v.editProjectIdx >= 0 && v.editProjectIdx < len(v.projects) {
		id := v.projects[v.editProjectIdx].ID
		in.ProjectID = &id
	}

	if raw := strings.TrimSpace(v.editDue.Value()); raw != "" {
		due, err := time.Parse("2006-01-02", raw)
		if err != nil {
			v.complain(fmt.Errorf("invalid due date: %s", raw))
			return v, nil
		}
		in.DueDate = &due
	}

	if raw := strings.TrimSpace(v.editEstimate.Value()); raw != "" {
		estimate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			v.complain(fmt.Errorf("invalid estimate: %s", raw))
			return v, nil
		}
		in.Estimate = &estimate
	}

	var err error
	if v.editID != 0 {
		_, err = v.store.UpdateTask(v.editID, in)
	} else {
		_, err = v.store.CreateTask(in)
	}
	if err != nil {
		v.complain(err)
		return v, nil
	}

	if v.editID != 0 {
		v.say("Task updated successfully")
	} else {
		v.say("Task created successfully")
	}
	v.editing = false
	v.refresh()
	return v, nil
}

func (v *TaskListView) updateFormFocus() {
	v.editTitle.Blur()
	v.editDesc.Blur()
	v.editDue.Blur()
	v.editEstimate.Blur()
	v.editTags.Blur()

	switch v.focusIdx {
	case focusTitle:
		v.editTitle.Focus()
	case focusDesc:
		v.editDesc.Focus()
	case focusDue:
		v.editDue.Focus()
	case focusEstimate:
		v.editEstimate.Focus()
	case focusTags:
		v.editTags.Focus()
	}
}

func (v *TaskListView) selected() (models.Task, bool) {
	if len(v.visible) == 0 || v.cursor >= len(v.visible) {
		return models.Task{}, false
	}
	return v.visible[v.cursor], true
}

// View renders the view
func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}
	if v.editing {
		return v.renderForm()
	}
	return v.renderList()
}

func (v *TaskListView) renderList() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		s.Title.Render("Tasks"),
		s.TitleMuted.Render(fmt.Sprintf("  %s · %s · sort:%s",
			statusLabel(v.params.Status), priorityLabel(v.params.Priority), v.params.Sort)),
	)

	searchLine := ""
	if v.searching || v.searchInput.Value() != "" {
		style := s.Input
		if v.searching {
			style = s.InputFocused
		}
		searchLine = style.Width(clamp(contentWidth-4, 20, 60)).Render(v.searchInput.View())
	}

	var rows []string
	listHeight := max(v.height-10, 3)
	v.scrollY = clamp(v.scrollY, max(v.cursor-listHeight+1, 0), v.cursor)

	end := min(v.scrollY+listHeight, len(v.visible))
	now := time.Now()
	for i := v.scrollY; i < end; i++ {
		rows = append(rows, v.renderTaskRow(v.visible[i], i == v.cursor, now))
	}

	if len(v.visible) == 0 {
		rows = append(rows,
			"",
			s.TitleMuted.Render("  No tasks found"),
			s.TitleMuted.Render("  Try adjusting your filters or press 'n' to create one"),
		)
	}

	sections := []string{header}
	if searchLine != "" {
		sections = append(sections, searchLine)
	}
	sections = append(sections, strings.Join(rows, "\n"), v.renderNotice(), v.renderListHelp())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TaskListView) renderTaskRow(t models.Task, selected bool, now time.Time) string {
	s := v.styles

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}

	var prio string
	switch t.Priority {
	case models.PriorityHigh:
		prio = s.PriorityHigh.Render("high")
	case models.PriorityLow:
		prio = s.PriorityLow.Render("low")
	default:
		prio = s.PriorityMedium.Render("med")
	}

	title := t.Title
	if t.Completed {
		title = s.Completed.Render(title)
	} else if t.Overdue(now) {
		title = s.Overdue.Render(title)
	}

	var meta []string
	if t.ProjectID != nil {
		if p, err := v.store.Project(*t.ProjectID); err == nil {
			meta = append(meta, lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(p.Name))
		}
	}
	if t.DueDate != nil {
		meta = append(meta, t.DueDate.Format("Jan 2"))
	}
	if t.Estimate != nil {
		meta = append(meta, fmt.Sprintf("%gh", *t.Estimate))
	}
	for _, tag := range t.Tags {
		meta = append(meta, s.Tag.Render(tag))
	}

	row := fmt.Sprintf("%s %s %s", check, prio, title)
	if len(meta) > 0 {
		row += "  " + s.TitleMuted.Render(strings.Join(meta, " · "))
	}

	if selected {
		return s.ListSelected.Render(row)
	}
	return s.ListItem.Render(row)
}

func (v *TaskListView) renderForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	formTitle := "New Task"
	if v.editID != 0 {
		formTitle = "Edit Task"
	}

	projectName := "none"
	if v.editProjectIdx >= 0 && v.editProjectIdx < len(v.projects) {
		projectName = v.projects[v.editProjectIdx].Name
	}

	field := func(idx int, label, body string) string {
		style := s.Input
		if v.focusIdx == idx {
			style = s.InputFocused
		}
		return label + "\n" + style.Width(inputWidth).Render(body)
	}

	saveStyle := s.Button
	if v.focusIdx == focusSave {
		saveStyle = s.ButtonFocused
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(formTitle),
		"",
		field(focusTitle, "Title:", v.editTitle.View()),
		field(focusDesc, "Description:", v.editDesc.View()),
		field(focusPriority, "Priority:", "< "+string(v.editPriority)+" >"),
		field(focusProject, "Project:", "< "+projectName+" >"),
		field(focusDue, "Due date:", v.editDue.View()),
		field(focusEstimate, "Estimate:", v.editEstimate.View()),
		field(focusTags, "Tags:", v.editTags.View()),
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

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q will be removed permanently", v.deleteTargetName)),
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

func (v *TaskListView) renderNotice() string {
	if v.notice == "" {
		return ""
	}
	if v.noticeBad {
		return v.styles.StatusNo.Render(v.notice)
	}
	return v.styles.StatusOK.Render(v.notice)
}

func (v *TaskListView) renderListHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s toggle • %s new • %s edit • %s del • %s search • %s/%s/%s filters",
			s.HelpKey.Render("space"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("f"),
			s.HelpKey.Render("p"),
			s.HelpKey.Render("s"),
		),
	)
}

func statusLabel(st query.Status) string {
	if st == "" {
		return "all"
	}
	return string(st)
}

func priorityLabel(p models.Priority) string {
	if p == "" {
		return "any priority"
	}
	return string(p)
}

// cycle returns the element after current, wrapping around
func cycle[T comparable](values []T, current T) T {
	for i, val := range values {
		if val == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
