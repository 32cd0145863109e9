package ui

import (
	"testing"

	"lambdagw/internal/composer"
	"lambdagw/internal/deploy"
	"lambdagw/internal/envvars"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press sends one key and returns the message of the resulting command,
// or nil when there is none.
func press(m *BuildModal, k string) tea.Msg {
	_, cmd := m.Update(keyMsg(k))
	if cmd == nil {
		return nil
	}
	return cmd()
}

// focusOn tabs until id is focused.
func focusOn(t *testing.T, m *BuildModal, id string) {
	t.Helper()
	for i := 0; i < 64; i++ {
		if m.Focused() == id {
			return
		}
		press(m, "tab")
	}
	t.Fatalf("never reached focus %q (order %v)", id, m.focus.Order)
}

func envID(t *testing.T, m *BuildModal, i int, f envvars.Field) string {
	t.Helper()
	row, ok := m.Form().Fields.EnvVars.At(i)
	require.True(t, ok, "row %d", i)
	return envFocusID(row.ID, f)
}

func fillScenario(t *testing.T, m *BuildModal) {
	t.Helper()
	typeText(m, "/srv/app")
	press(m, "tab")
	typeText(m, "shop")
	press(m, "tab")
	press(m, "right") // nextjs
	press(m, "tab")
	typeText(m, "8080")
	press(m, "tab")
	typeText(m, "API_KEY")
	press(m, "tab")
	typeText(m, "abc")
}

func TestBuildModal_InitialState(t *testing.T) {
	m := NewBuildModal("c1")
	assert.Equal(t, focusProjectPath, m.Focused())
	assert.Equal(t, 1, m.Form().Fields.EnvVars.Len())
	assert.Equal(t, composer.PhaseIdle, m.Form().State().Phase)

	out := m.View()
	assert.Contains(t, out, composerTitle)
	assert.Contains(t, out, "Select framework")
	assert.Contains(t, out, "Build & Deploy")
	assert.NotContains(t, out, "ctrl+d ✕", "single row is not removable")
}

func TestBuildModal_ScenarioPayload(t *testing.T) {
	m := NewBuildModal("c1")
	fillScenario(t, m)

	msg := press(m, "ctrl+s")
	req, ok := msg.(SubmitRequestedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, "c1", req.ComposerID)

	port := 8080
	assert.Equal(t, deploy.BuildRequest{
		ProjectPath: "/srv/app",
		AppName:     "shop",
		Framework:   deploy.FrameworkNextJS,
		EnvVars:     map[string]string{"API_KEY": "abc"},
		Port:        &port,
	}, req.Request)
	assert.True(t, m.Form().Submitting())
	assert.Contains(t, m.View(), "Building...")
}

func TestBuildModal_EnterOnSubmitButton(t *testing.T) {
	m := NewBuildModal("c1")
	fillScenario(t, m)

	// enter elsewhere only advances focus
	assert.Nil(t, press(m, "enter"))
	focusOn(t, m, focusSubmit)
	_, ok := press(m, "enter").(SubmitRequestedMsg)
	assert.True(t, ok)
}

func TestBuildModal_SecondSubmitWhileInFlight(t *testing.T) {
	m := NewBuildModal("c1")
	fillScenario(t, m)

	require.IsType(t, SubmitRequestedMsg{}, press(m, "ctrl+s"))
	assert.Nil(t, press(m, "ctrl+s"), "no second request while one is in flight")
}

func TestBuildModal_ValidationHintNoRequest(t *testing.T) {
	m := NewBuildModal("c1")
	typeText(m, "/srv/app")

	assert.Nil(t, press(m, "ctrl+s"))
	assert.Equal(t, "App Name is required", m.Hint())
	assert.Equal(t, focusAppName, m.Focused(), "focus jumps to the missing field")
	assert.False(t, m.Form().Submitting())
	assert.Contains(t, m.View(), "App Name is required")

	typeText(m, "shop")
	assert.Nil(t, press(m, "ctrl+s"))
	assert.Equal(t, "Framework is required", m.Hint())
	assert.Equal(t, focusFramework, m.Focused())
}

func TestBuildModal_PortAcceptsDigitsOnly(t *testing.T) {
	m := NewBuildModal("c1")
	focusOn(t, m, focusPort)
	typeText(m, "8a0-8 0")
	assert.Equal(t, "8080", m.Form().Fields.Port)
}

func TestBuildModal_EmptyPortSendsNull(t *testing.T) {
	m := NewBuildModal("c1")
	typeText(m, "/srv/app")
	press(m, "tab")
	typeText(m, "shop")
	press(m, "tab")
	press(m, "left") // wraps to vite

	req, ok := press(m, "ctrl+s").(SubmitRequestedMsg)
	require.True(t, ok)
	assert.Nil(t, req.Request.Port)
	assert.Equal(t, deploy.FrameworkVite, req.Request.Framework)
	assert.Empty(t, req.Request.EnvVars)
}

func TestBuildModal_FrameworkCycle(t *testing.T) {
	m := NewBuildModal("c1")
	focusOn(t, m, focusFramework)

	press(m, "right")
	assert.Equal(t, "nextjs", m.Form().Fields.Framework)
	press(m, "right")
	assert.Equal(t, "vite", m.Form().Fields.Framework)
	press(m, "right")
	assert.Equal(t, "", m.Form().Fields.Framework)
	press(m, "left")
	assert.Equal(t, "vite", m.Form().Fields.Framework)
	assert.Contains(t, m.View(), "Vite")
}

func TestBuildModal_AddAndRemoveRows(t *testing.T) {
	m := NewBuildModal("c1")
	focusOn(t, m, envID(t, m, 0, envvars.FieldKey))
	typeText(m, "A")

	press(m, "ctrl+a")
	require.Equal(t, 2, m.Form().Fields.EnvVars.Len())
	assert.Equal(t, envID(t, m, 1, envvars.FieldKey), m.Focused(), "new row gets focus")
	typeText(m, "B")

	press(m, "ctrl+a")
	typeText(m, "C")
	require.Equal(t, 3, m.Form().Fields.EnvVars.Len())
	assert.Contains(t, m.View(), "ctrl+d ✕")

	// remove the middle row; C keeps its identity and text
	focusOn(t, m, envID(t, m, 1, envvars.FieldKey))
	cID := envID(t, m, 2, envvars.FieldKey)
	press(m, "ctrl+d")
	require.Equal(t, 2, m.Form().Fields.EnvVars.Len())
	assert.Equal(t, cID, m.Focused(), "focus lands on the next input")
	assert.Equal(t, "C", m.input(cID).Value())

	keys := []string{}
	for _, r := range m.Form().Fields.EnvVars.Rows() {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"A", "C"}, keys)
}

func TestBuildModal_LastRowNotRemovable(t *testing.T) {
	m := NewBuildModal("c1")
	focusOn(t, m, envID(t, m, 0, envvars.FieldKey))
	typeText(m, "A")

	assert.Nil(t, press(m, "ctrl+d"))
	require.Equal(t, 1, m.Form().Fields.EnvVars.Len())
	assert.Equal(t, "A", m.Form().Fields.EnvVars.Rows()[0].Key)
}

func TestBuildModal_RemoveIgnoredOutsideRows(t *testing.T) {
	m := NewBuildModal("c1")
	press(m, "ctrl+a")
	focusOn(t, m, focusAppName)
	press(m, "ctrl+d")
	assert.Equal(t, 2, m.Form().Fields.EnvVars.Len())
}

func TestBuildModal_FailureKeepsFields(t *testing.T) {
	m := NewBuildModal("c1")
	fillScenario(t, m)
	press(m, "ctrl+s")

	cmd := m.Finish(deploy.SubmitResult{Message: "quota exceeded"})
	assert.Nil(t, cmd)
	assert.Equal(t, composer.State{Phase: composer.PhaseFailed, Message: "quota exceeded"}, m.Form().State())
	assert.Equal(t, "shop", m.Form().Fields.AppName)
	assert.Contains(t, m.View(), "quota exceeded")
	assert.Contains(t, m.View(), "Build & Deploy")

	// retry clears the message
	_, ok := press(m, "ctrl+s").(SubmitRequestedMsg)
	require.True(t, ok)
	assert.NotContains(t, m.View(), "quota exceeded")
}

func TestBuildModal_SuccessResetsAndAnnounces(t *testing.T) {
	m := NewBuildModal("c1")
	fillScenario(t, m)
	press(m, "ctrl+s")

	cmd := m.Finish(deploy.SubmitResult{OK: true})
	require.NotNil(t, cmd)
	assert.Equal(t, BuildSucceededMsg{ComposerID: "c1"}, cmd())

	f := m.Form().Fields
	assert.Empty(t, f.ProjectPath)
	assert.Empty(t, f.AppName)
	assert.Empty(t, f.Framework)
	assert.Empty(t, f.Port)
	assert.Equal(t, 1, f.EnvVars.Len())
	assert.Equal(t, "", m.path.Value())
	assert.Equal(t, focusProjectPath, m.Focused())
}

func TestBuildModal_FinishWithoutSubmitIsNoop(t *testing.T) {
	m := NewBuildModal("c1")
	assert.Nil(t, m.Finish(deploy.SubmitResult{OK: true}))
}

func TestBuildModal_EscRequestsClose(t *testing.T) {
	m := NewBuildModal("c1")
	assert.Equal(t, CloseComposerMsg{}, press(m, "esc"))
}

func TestParseEnvFocus(t *testing.T) {
	id, f, ok := parseEnvFocus(envFocusID("6f1c-77", envvars.FieldValue))
	require.True(t, ok)
	assert.Equal(t, "6f1c-77", id)
	assert.Equal(t, envvars.FieldValue, f)

	_, _, ok = parseEnvFocus(focusPort)
	assert.False(t, ok)
	_, _, ok = parseEnvFocus("env:abc:other")
	assert.False(t, ok)
}
