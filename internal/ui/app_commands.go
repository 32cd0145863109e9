package ui

import (
	"context"

	"lambdagw/internal/deploy"

	tea "github.com/charmbracelet/bubbletea"
)

// listAppsCmd fetches the registry. The client never fails a listing; a
// transport or parse problem yields an empty slice.
func listAppsCmd(c deploy.Client, seq int) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return AppsLoadedMsg{Seq: seq}
		}
		return AppsLoadedMsg{Seq: seq, Apps: c.ListApps(context.Background())}
	}
}

// submitBuildCmd sends one build request on behalf of composer id.
func submitBuildCmd(c deploy.Client, id string, req deploy.BuildRequest) tea.Cmd {
	return func() tea.Msg {
		if c == nil {
			return BuildFinishedMsg{ComposerID: id, Result: deploy.SubmitResult{Message: deploy.MsgSubmitFailed}}
		}
		return BuildFinishedMsg{ComposerID: id, Result: c.SubmitBuild(context.Background(), req)}
	}
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
