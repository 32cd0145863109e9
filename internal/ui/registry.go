package ui

import (
	"fmt"
	"sort"
	"strings"

	"lambdagw/internal/deploy"
	"lambdagw/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	registryTitle       = "(serverless applications deployed)"
	registryLoadingText = "Loading applications..."
	registryEmptyText   = "No applications deployed yet"
)

// appItem implements list.Item for a deployed application.
type appItem struct {
	deploy.DeployedApp
}

func (a appItem) FilterValue() string { return a.AppName }

func (a appItem) Title() string {
	fw := a.Framework
	if f, ok := deploy.ParseFramework(fw); ok {
		fw = f.Label()
	}
	return fmt.Sprintf("%s  %s  Port: %d", a.AppName, Styles.Tag.Render(fw), a.Port)
}

func (a appItem) Description() string {
	if a.Status == "" {
		return a.URL
	}
	return a.URL + "  " + statusStyle(a.Status).Render(a.Status)
}

func statusStyle(status string) lipgloss.Style {
	if status == "running" {
		return Styles.Running
	}
	return Styles.Stopped
}

// RegistryView lists the applications the backend reports as deployed.
// It renders whatever the last listing returned; there is no local cache.
type RegistryView struct {
	Apps []deploy.DeployedApp

	list       list.Model
	spinner    spinner.Model
	loading    bool
	showDetail bool
	width      int
}

var _ View = (*RegistryView)(nil)

// NewRegistryView creates a registry in the loading state; the first
// AppsLoadedMsg resolves it.
func NewRegistryView() *RegistryView {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = Styles.Selected
	delegate.Styles.SelectedDesc = Styles.Selected.Bold(false)
	delegate.Styles.NormalTitle = Styles.Normal
	delegate.Styles.NormalDesc = Styles.Muted

	l := list.New(nil, delegate, 0, 0)
	l.Title = registryTitle
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	return &RegistryView{
		list:    l,
		spinner: s,
		loading: true,
	}
}

// Init implements View.
func (r *RegistryView) Init() tea.Cmd {
	return r.spinner.Tick
}

// Loading reports whether a listing is pending.
func (r *RegistryView) Loading() bool {
	return r.loading
}

// SetLoading switches to the loading placeholder and starts the spinner.
func (r *RegistryView) SetLoading(loading bool) tea.Cmd {
	r.loading = loading
	if loading {
		return r.spinner.Tick
	}
	return nil
}

// SetApps resolves the loading state with a new listing. The selection is
// kept on the same app name when it is still present.
func (r *RegistryView) SetApps(apps []deploy.DeployedApp) {
	prev := ""
	if a, ok := r.SelectedApp(); ok {
		prev = a.AppName
	}
	r.Apps = apps
	r.loading = false

	items := make([]list.Item, len(apps))
	sel := 0
	for i, a := range apps {
		items[i] = appItem{DeployedApp: a}
		if prev != "" && a.AppName == prev {
			sel = i
		}
	}
	r.list.SetItems(items)
	r.list.Select(sel)
	if len(apps) == 0 {
		r.showDetail = false
	}
}

// SelectedApp returns the highlighted app, if any.
func (r *RegistryView) SelectedApp() (deploy.DeployedApp, bool) {
	it, ok := r.list.SelectedItem().(appItem)
	if !ok {
		return deploy.DeployedApp{}, false
	}
	return it.DeployedApp, true
}

// Selected returns the index of the highlighted app.
func (r *RegistryView) Selected() int {
	return r.list.Index()
}

// ToggleDetail shows or hides the env var block of the selected app.
func (r *RegistryView) ToggleDetail() {
	if len(r.Apps) == 0 {
		r.showDetail = false
		return
	}
	r.showDetail = !r.showDetail
}

// DetailVisible reports whether the env var block is shown.
func (r *RegistryView) DetailVisible() bool {
	return r.showDetail
}

// Update implements View.
func (r *RegistryView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.list.SetWidth(msg.Width)
		r.list.SetHeight(msg.Height - 8) // title, hint, detail block
		return r, nil
	case spinner.TickMsg:
		if !r.loading {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd
	case tea.KeyMsg:
		if r.loading || len(r.Apps) == 0 {
			return r, nil
		}
	}

	// list.Model handles j/k/up/down/g/G natively.
	var cmd tea.Cmd
	r.list, cmd = r.list.Update(msg)
	return r, cmd
}

// View implements View.
func (r *RegistryView) View() string {
	if r.list.Width() == 0 {
		r.list.SetWidth(80)
	}
	if r.list.Height() == 0 {
		r.list.SetHeight(20)
	}

	var b strings.Builder
	title := Styles.Title.Render(registryTitle)
	if r.loading {
		title += " " + r.spinner.View()
	}
	b.WriteString(title + "\n")
	b.WriteString(Styles.Hint.Render("n new build · r refresh · enter env vars · SPC for commands") + "\n\n")

	switch {
	case r.loading:
		b.WriteString(Styles.Empty.Render(registryLoadingText))
	case len(r.Apps) == 0:
		b.WriteString(Styles.Empty.Render(registryEmptyText))
	default:
		b.WriteString(r.list.View())
		if r.showDetail {
			if a, ok := r.SelectedApp(); ok {
				b.WriteString("\n" + r.renderDetail(a))
			}
		}
	}
	return b.String()
}

// renderDetail lists env vars sorted by key.
func (r *RegistryView) renderDetail(a deploy.DeployedApp) string {
	width := r.width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	b.WriteString(Styles.Title.Render(a.AppName+" env") + "\n")
	if len(a.EnvVars) == 0 {
		b.WriteString(Styles.Empty.Render("  (none)"))
		return b.String()
	}
	keys := make([]string, 0, len(a.EnvVars))
	for k := range a.EnvVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		line := textutil.Truncate(fmt.Sprintf("  %s=%s", k, a.EnvVars[k]), width)
		b.WriteString(Styles.Muted.Render(line))
		if i < len(keys)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
