package ui

import "lambdagw/internal/deploy"

// AppsLoadedMsg carries the result of a ListApps call. Seq identifies the
// fetch; results from a superseded fetch are dropped.
type AppsLoadedMsg struct {
	Seq  int
	Apps []deploy.DeployedApp
}

// RefreshAppsMsg asks for a new ListApps call (r / SPC r).
type RefreshAppsMsg struct{}

// OpenComposerMsg opens a fresh build composer (n / SPC b).
type OpenComposerMsg struct{}

// CloseComposerMsg closes the composer and discards unsubmitted edits.
type CloseComposerMsg struct{}

// SubmitRequestedMsg is emitted by the composer once its form has entered
// the submitting state. The app dispatches the network call.
type SubmitRequestedMsg struct {
	ComposerID string
	Request    deploy.BuildRequest
}

// BuildFinishedMsg carries the normalized backend answer for the
// submission started by composer ComposerID.
type BuildFinishedMsg struct {
	ComposerID string
	Result     deploy.SubmitResult
}

// BuildSucceededMsg is emitted by the composer after it has recorded a
// successful submission. The app then closes it and refreshes the list.
type BuildSucceededMsg struct {
	ComposerID string
}

// ToggleDetailMsg shows or hides the env vars of the selected app.
type ToggleDetailMsg struct{}
