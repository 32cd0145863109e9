package ui

import (
	"errors"
	"fmt"
	"strings"

	"lambdagw/internal/composer"
	"lambdagw/internal/deploy"
	"lambdagw/internal/envvars"
	"lambdagw/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const composerTitle = "(generate build for deployment)"

// Focus IDs of the fixed inputs. Env rows use envFocusID.
const (
	focusProjectPath = "project_path"
	focusAppName     = "app_name"
	focusFramework   = "framework"
	focusPort        = "port"
	focusSubmit      = "submit"
)

// frameworkOptions is the select cycle; "" is the unselected placeholder.
var frameworkOptions = []string{"", string(deploy.FrameworkNextJS), string(deploy.FrameworkVite)}

var fieldLabels = map[string]string{
	focusProjectPath: "Project Path",
	focusAppName:     "App Name",
	focusFramework:   "Framework",
	focusPort:        "Port (optional)",
}

const labelWidth = 16

type envRowInputs struct {
	key   textinput.Model
	value textinput.Model
}

// BuildModal is the build request composer. Field values and the submission
// state live in a composer.Form; the modal owns the text inputs and focus.
// The network call is made by the app: the modal only emits
// SubmitRequestedMsg once the form has entered the submitting state.
type BuildModal struct {
	ID string

	form      *composer.Form
	path      textinput.Model
	name      textinput.Model
	port      textinput.Model
	env       map[string]*envRowInputs
	framework int // index into frameworkOptions
	focus     FocusManager
	hint      string // local validation hint, cleared on the next attempt
}

var _ View = (*BuildModal)(nil)

// NewBuildModal returns an empty composer identified by id.
func NewBuildModal(id string) *BuildModal {
	m := &BuildModal{
		ID:   id,
		form: composer.NewForm(),
	}
	m.resetInputs()
	return m
}

// Form exposes the underlying form state.
func (m *BuildModal) Form() *composer.Form {
	return m.form
}

// Focused returns the focus ID of the active input.
func (m *BuildModal) Focused() string {
	return m.focus.Current
}

// Hint returns the pending validation hint, if any.
func (m *BuildModal) Hint() string {
	return m.hint
}

func (m *BuildModal) resetInputs() {
	m.path = newInput("/path/to/project", 0)
	m.name = newInput("my-app", 0)
	m.port = newInput("8000", 5)
	m.framework = 0
	m.env = make(map[string]*envRowInputs)
	for _, row := range m.form.Fields.EnvVars.Rows() {
		m.env[row.ID] = newEnvRowInputs(row)
	}
	m.focus = FocusManager{Current: focusProjectPath}
	m.focus.SetOrder(m.focusOrder())
	m.syncFocus()
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	// A static cursor keeps focus changes free of blink timers.
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newEnvRowInputs(row envvars.Row) *envRowInputs {
	in := &envRowInputs{
		key:   newInput("KEY", 0),
		value: newInput("value", 0),
	}
	in.key.Width = 20
	in.value.Width = 30
	in.key.SetValue(row.Key)
	in.value.SetValue(row.Value)
	return in
}

func envFocusID(rowID string, f envvars.Field) string {
	return "env:" + rowID + ":" + f.String()
}

// parseEnvFocus splits an env focus ID into row ID and field.
func parseEnvFocus(id string) (string, envvars.Field, bool) {
	rest, ok := strings.CutPrefix(id, "env:")
	if !ok {
		return "", 0, false
	}
	i := strings.LastIndex(rest, ":")
	if i < 0 {
		return "", 0, false
	}
	switch rest[i+1:] {
	case envvars.FieldKey.String():
		return rest[:i], envvars.FieldKey, true
	case envvars.FieldValue.String():
		return rest[:i], envvars.FieldValue, true
	}
	return "", 0, false
}

func (m *BuildModal) focusOrder() []string {
	rows := m.form.Fields.EnvVars.Rows()
	order := make([]string, 0, 5+2*len(rows))
	order = append(order, focusProjectPath, focusAppName, focusFramework, focusPort)
	for _, row := range rows {
		order = append(order, envFocusID(row.ID, envvars.FieldKey), envFocusID(row.ID, envvars.FieldValue))
	}
	return append(order, focusSubmit)
}

// input returns the text input behind a focus ID, or nil for the
// framework select and the submit button.
func (m *BuildModal) input(id string) *textinput.Model {
	switch id {
	case focusProjectPath:
		return &m.path
	case focusAppName:
		return &m.name
	case focusPort:
		return &m.port
	}
	rowID, field, ok := parseEnvFocus(id)
	if !ok {
		return nil
	}
	in, ok := m.env[rowID]
	if !ok {
		return nil
	}
	if field == envvars.FieldKey {
		return &in.key
	}
	return &in.value
}

// syncFocus blurs every input and focuses the current one.
func (m *BuildModal) syncFocus() tea.Cmd {
	m.path.Blur()
	m.name.Blur()
	m.port.Blur()
	for _, in := range m.env {
		in.key.Blur()
		in.value.Blur()
	}
	if in := m.input(m.focus.Current); in != nil {
		return in.Focus()
	}
	return nil
}

// Init implements View.
func (m *BuildModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *BuildModal) Update(msg tea.Msg) (View, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if in := m.input(m.focus.Current); in != nil {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "esc":
		return m, msgCmd(CloseComposerMsg{})
	case "tab", "down":
		m.focus.Next()
		return m, m.syncFocus()
	case "shift+tab", "up":
		m.focus.Prev()
		return m, m.syncFocus()
	case "ctrl+a":
		return m, m.addRow()
	case "ctrl+d":
		return m, m.removeFocusedRow()
	case "ctrl+s":
		return m, m.submit()
	case "enter":
		if m.focus.Current == focusSubmit {
			return m, m.submit()
		}
		m.focus.Next()
		return m, m.syncFocus()
	case "left", "right":
		if m.focus.Current == focusFramework {
			m.cycleFramework(key.String() == "right")
			return m, nil
		}
	}

	if m.focus.Current == focusPort && !digitsOnly(key) {
		return m, nil
	}
	in := m.input(m.focus.Current)
	if in == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	m.writeBack(m.focus.Current, in.Value())
	return m, cmd
}

// digitsOnly reports whether a key is acceptable in the port input:
// digits, or an editing key that inserts nothing.
func digitsOnly(k tea.KeyMsg) bool {
	switch k.Type {
	case tea.KeySpace:
		return false
	case tea.KeyRunes:
		for _, r := range k.Runes {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// writeBack copies an input value into the form fields.
func (m *BuildModal) writeBack(id, value string) {
	f := &m.form.Fields
	switch id {
	case focusProjectPath:
		f.ProjectPath = value
	case focusAppName:
		f.AppName = value
	case focusPort:
		f.Port = value
	default:
		if rowID, field, ok := parseEnvFocus(id); ok {
			f.EnvVars = f.EnvVars.Update(rowID, field, value)
		}
	}
}

func (m *BuildModal) cycleFramework(forward bool) {
	n := len(frameworkOptions)
	if forward {
		m.framework = (m.framework + 1) % n
	} else {
		m.framework = (m.framework - 1 + n) % n
	}
	m.form.Fields.Framework = frameworkOptions[m.framework]
}

func (m *BuildModal) addRow() tea.Cmd {
	f := &m.form.Fields
	f.EnvVars = f.EnvVars.Add()
	row, _ := f.EnvVars.At(f.EnvVars.Len() - 1)
	m.env[row.ID] = newEnvRowInputs(row)
	m.focus.SetOrder(m.focusOrder())
	m.focus.SetFocus(envFocusID(row.ID, envvars.FieldKey))
	return m.syncFocus()
}

// removeFocusedRow drops the env row under focus. The last row is never
// removed; the list would only be reset to one blank row anyway.
func (m *BuildModal) removeFocusedRow() tea.Cmd {
	rowID, _, ok := parseEnvFocus(m.focus.Current)
	f := &m.form.Fields
	if !ok || !f.EnvVars.CanRemove() {
		return nil
	}
	f.EnvVars = f.EnvVars.Remove(rowID)
	delete(m.env, rowID)
	m.focus.SetOrder(m.focusOrder())
	return m.syncFocus()
}

// submit starts a submission through the form. A validation failure sets
// the hint and moves focus to the offending field; a submission already in
// flight makes this a no-op.
func (m *BuildModal) submit() tea.Cmd {
	req, err := m.form.Begin()
	var verr *composer.ValidationError
	switch {
	case errors.Is(err, composer.ErrSubmitting):
		return nil
	case errors.As(err, &verr):
		m.hint = fmt.Sprintf("%s is required", fieldLabels[verr.Field])
		if verr.Reason != "required" {
			m.hint = fmt.Sprintf("%s: %s", fieldLabels[verr.Field], verr.Reason)
		}
		m.focus.SetFocus(verr.Field)
		return m.syncFocus()
	case err != nil:
		m.hint = err.Error()
		return nil
	}
	m.hint = ""
	return msgCmd(SubmitRequestedMsg{ComposerID: m.ID, Request: req})
}

// Finish records the backend answer for this composer's submission. On
// success the form is reset and BuildSucceededMsg is emitted; on failure
// the fields stay populated and the message is shown.
func (m *BuildModal) Finish(res deploy.SubmitResult) tea.Cmd {
	if !m.form.Finish(res) {
		return nil
	}
	m.hint = ""
	m.resetInputs()
	return msgCmd(BuildSucceededMsg{ComposerID: m.ID})
}

// View implements View.
func (m *BuildModal) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render(composerTitle) + "\n\n")

	if st := m.form.State(); st.Phase == composer.PhaseFailed {
		b.WriteString(Styles.ErrorBox.Render(st.Message) + "\n\n")
	}

	b.WriteString(m.renderField(focusProjectPath, m.path.View()) + "\n")
	b.WriteString(m.renderField(focusAppName, m.name.View()) + "\n")
	b.WriteString(m.renderField(focusFramework, m.renderFramework()) + "\n")
	b.WriteString(m.renderField(focusPort, m.port.View()) + "\n\n")

	b.WriteString(Styles.Label.Render("Environment Variables") + "  " +
		Styles.Hint.Render("+ Add Variable (ctrl+a)") + "\n")
	canRemove := m.form.Fields.EnvVars.CanRemove()
	for _, row := range m.form.Fields.EnvVars.Rows() {
		in := m.env[row.ID]
		if in == nil {
			continue
		}
		line := "  " + in.key.View() + " = " + in.value.View()
		if canRemove {
			line += "  " + Styles.Hint.Render("ctrl+d ✕")
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	if m.hint != "" {
		b.WriteString(Styles.Invalid.Render(m.hint) + "\n")
	}
	b.WriteString(m.renderButton() + "\n")
	b.WriteString(Styles.Hint.Render("tab/shift+tab move · ←/→ framework · ctrl+s submit · esc cancel"))

	return Styles.Box.Render(b.String())
}

func (m *BuildModal) renderField(id, value string) string {
	label := textutil.PadRightVisual(fieldLabels[id], labelWidth)
	if m.focus.Current == id {
		return Styles.Focused.Render(label) + value
	}
	return Styles.Label.Render(label) + value
}

func (m *BuildModal) renderFramework() string {
	v := "Select framework"
	if fw, ok := deploy.ParseFramework(frameworkOptions[m.framework]); ok {
		v = fw.Label()
	}
	if m.focus.Current == focusFramework {
		return Styles.Focused.Render("‹ " + v + " ›")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorText)).Render(v)
}

func (m *BuildModal) renderButton() string {
	if m.form.Submitting() {
		return Styles.ButtonOff.Render("Building...")
	}
	if m.focus.Current == focusSubmit {
		return Styles.ButtonOn.Render("Build & Deploy")
	}
	return Styles.Button.Render("Build & Deploy")
}
