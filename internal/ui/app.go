package ui

import (
	"io"

	"lambdagw/internal/deploy"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AppModel is the root model: the application registry with an optional
// build composer on top of it.
type AppModel struct {
	Mode       AppMode
	Registry   *RegistryView
	Composer   *BuildModal // nil when closed
	KeyHandler *KeyHandler
	Client     deploy.Client
	Log        logrus.FieldLogger

	fetchSeq int  // identifies the latest listing; older results are dropped
	fetching bool // a listing is in flight
	width    int
	height   int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// newComposerID is swapped in tests that need a known composer identity.
var newComposerID = uuid.NewString

// NewAppModel creates the root model. The registry starts loading; Init
// issues the first listing.
func NewAppModel(client deploy.Client, log logrus.FieldLogger) *AppModel {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	reg := NewKeybindRegistry()
	registryOnly := []AppMode{ModeRegistry}
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDescForMode("q", tea.Quit, "Quit", registryOnly)
	reg.BindWithDescForMode("SPC q", tea.Quit, "Quit", registryOnly)
	reg.BindWithDescForMode("n", msgCmd(OpenComposerMsg{}), "New build", registryOnly)
	reg.BindWithDescForMode("SPC b", msgCmd(OpenComposerMsg{}), "New build", registryOnly)
	reg.BindWithDescForMode("r", msgCmd(RefreshAppsMsg{}), "Refresh", registryOnly)
	reg.BindWithDescForMode("SPC r", msgCmd(RefreshAppsMsg{}), "Refresh", registryOnly)
	reg.BindWithDescForMode("enter", msgCmd(ToggleDetailMsg{}), "Env vars", registryOnly)
	return &AppModel{
		Mode:       ModeRegistry,
		Registry:   NewRegistryView(),
		KeyHandler: NewKeyHandler(reg),
		Client:     client,
		Log:        log.WithField("component", "ui"),
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// OpenComposer replaces any open composer with a fresh one.
func (m *AppModel) OpenComposer() tea.Cmd {
	m.Composer = NewBuildModal(newComposerID())
	m.Mode = ModeComposer
	m.Log.WithField("composer", m.Composer.ID).Debug("composer opened")
	return m.Composer.Init()
}

// CloseComposer drops the composer and its unsubmitted edits. A submission
// still in flight resolves against a composer that no longer exists and is
// discarded.
func (m *AppModel) CloseComposer() {
	if m.Composer != nil {
		m.Log.WithField("composer", m.Composer.ID).Debug("composer closed")
	}
	m.Composer = nil
	m.Mode = ModeRegistry
}

// refresh starts a listing. Unless force is set, it does nothing while a
// listing is already in flight. A forced refresh supersedes the pending one.
func (m *AppModel) refresh(force bool) tea.Cmd {
	if m.fetching && !force {
		return nil
	}
	m.fetchSeq++
	m.fetching = true
	return tea.Batch(m.Registry.SetLoading(true), listAppsCmd(m.Client, m.fetchSeq))
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.refresh(false)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		_, cmd := a.Registry.Update(msg)
		return a, cmd
	case AppsLoadedMsg:
		if msg.Seq != a.fetchSeq {
			a.Log.WithFields(logrus.Fields{"seq": msg.Seq, "latest": a.fetchSeq}).Debug("dropping superseded listing")
			return a, nil
		}
		a.fetching = false
		a.Registry.SetApps(msg.Apps)
		return a, nil
	case RefreshAppsMsg:
		return a, a.refresh(false)
	case ToggleDetailMsg:
		a.Registry.ToggleDetail()
		return a, nil
	case OpenComposerMsg:
		return a, a.OpenComposer()
	case CloseComposerMsg:
		a.CloseComposer()
		return a, nil
	case SubmitRequestedMsg:
		if a.Composer == nil || a.Composer.ID != msg.ComposerID {
			return a, nil
		}
		a.Log.WithFields(logrus.Fields{
			"composer":  msg.ComposerID,
			"app":       msg.Request.AppName,
			"framework": msg.Request.Framework,
		}).Info("submitting build request")
		return a, submitBuildCmd(a.Client, msg.ComposerID, msg.Request)
	case BuildFinishedMsg:
		return a, a.handleBuildFinished(msg)
	case BuildSucceededMsg:
		if a.Composer != nil && a.Composer.ID == msg.ComposerID {
			a.CloseComposer()
		}
		return a, a.refresh(true)
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	return a, a.forward(msg)
}

func (a *appModelAdapter) handleBuildFinished(msg BuildFinishedMsg) tea.Cmd {
	log := a.Log.WithFields(logrus.Fields{"composer": msg.ComposerID, "success": msg.Result.OK})
	if !msg.Result.OK {
		log = log.WithField("message", msg.Result.Message)
	}
	if a.Composer == nil || a.Composer.ID != msg.ComposerID {
		log.Info("build result for closed composer")
		// The registry changed even though nobody is waiting on the result.
		if msg.Result.OK {
			return a.refresh(true)
		}
		return nil
	}
	log.Info("build request finished")
	return a.Composer.Finish(msg.Result)
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.Mode == ModeComposer && a.Composer != nil {
		// The composer takes every key but ctrl+c, SPC included.
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		_, cmd := a.Composer.Update(msg)
		return cmd
	}
	if a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
			return cmd
		}
	}
	_, cmd := a.Registry.Update(msg)
	return cmd
}

// forward routes non-key messages (spinner ticks, cursor blinks) to the
// registry and, when open, the composer.
func (a *appModelAdapter) forward(msg tea.Msg) tea.Cmd {
	_, cmd := a.Registry.Update(msg)
	if a.Composer == nil {
		return cmd
	}
	_, ccmd := a.Composer.Update(msg)
	return tea.Batch(cmd, ccmd)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if a.Mode == ModeComposer && a.Composer != nil {
		modal := a.Composer.View()
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return modal
	}
	base := a.Registry.View()
	if help := RenderKeybindHelp(a.KeyHandler, a.Mode); help != "" {
		base += "\n" + help
	}
	return base
}
