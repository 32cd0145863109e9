package ui

import (
	"strings"
	"testing"

	"lambdagw/internal/deploy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleApps() []deploy.DeployedApp {
	return []deploy.DeployedApp{
		{
			AppName:   "web",
			URL:       "http://gw.local/app/web",
			Port:      8001,
			Framework: "nextjs",
			EnvVars:   map[string]string{"NODE_ENV": "production", "API_KEY": "abc"},
			Status:    "running",
		},
		{
			AppName:   "docs",
			URL:       "http://gw.local/app/docs",
			Port:      8002,
			Framework: "vite",
		},
	}
}

func TestRegistryView_LoadingPlaceholder(t *testing.T) {
	r := NewRegistryView()
	require.True(t, r.Loading())

	out := r.View()
	assert.Contains(t, out, registryLoadingText)
	assert.NotContains(t, out, registryEmptyText)
}

func TestRegistryView_EmptyPlaceholder(t *testing.T) {
	r := NewRegistryView()
	r.SetApps([]deploy.DeployedApp{})

	out := r.View()
	assert.Contains(t, out, registryEmptyText)
	assert.NotContains(t, out, registryLoadingText)
}

func TestRegistryView_RendersRows(t *testing.T) {
	r := NewRegistryView()
	r.SetApps(sampleApps())

	out := r.View()
	for _, want := range []string{
		"web", "Next.js", "Port: 8001", "http://gw.local/app/web", "running",
		"docs", "Vite", "Port: 8002", "http://gw.local/app/docs",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, registryEmptyText)
}

func TestRegistryView_UnknownFrameworkShownVerbatim(t *testing.T) {
	r := NewRegistryView()
	r.SetApps([]deploy.DeployedApp{{AppName: "legacy", Framework: "react", Port: 3000}})
	assert.Contains(t, r.View(), "react")
}

func TestRegistryView_SelectionFollowsNameAcrossRefresh(t *testing.T) {
	r := NewRegistryView()
	r.SetApps(sampleApps())
	r.Update(keyMsg("j"))

	a, ok := r.SelectedApp()
	require.True(t, ok)
	require.Equal(t, "docs", a.AppName)

	// docs moves to the front after a refresh
	apps := sampleApps()
	apps[0], apps[1] = apps[1], apps[0]
	r.SetApps(apps)

	a, ok = r.SelectedApp()
	require.True(t, ok)
	assert.Equal(t, "docs", a.AppName)
	assert.Equal(t, 0, r.Selected())
}

func TestRegistryView_DetailListsEnvSorted(t *testing.T) {
	r := NewRegistryView()
	r.SetApps(sampleApps())

	assert.NotContains(t, r.View(), "API_KEY=abc")
	r.ToggleDetail()
	require.True(t, r.DetailVisible())

	out := r.View()
	api := strings.Index(out, "API_KEY=abc")
	node := strings.Index(out, "NODE_ENV=production")
	require.True(t, api >= 0 && node >= 0, "env vars missing from detail:\n%s", out)
	assert.Less(t, api, node, "env vars sorted by key")

	r.ToggleDetail()
	assert.False(t, r.DetailVisible())
}

func TestRegistryView_DetailNeedsApps(t *testing.T) {
	r := NewRegistryView()
	r.SetApps(nil)
	r.ToggleDetail()
	assert.False(t, r.DetailVisible())
}

func TestRegistryView_SetLoadingAgain(t *testing.T) {
	r := NewRegistryView()
	r.SetApps(sampleApps())

	cmd := r.SetLoading(true)
	assert.NotNil(t, cmd, "spinner restarts")
	out := r.View()
	assert.Contains(t, out, registryLoadingText)
	assert.NotContains(t, out, "Port: 8001")
}
