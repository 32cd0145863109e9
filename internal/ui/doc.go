// Package ui is the terminal console for the lambda gateway, built on
// Bubble Tea.
//
// The root AppModel shows the RegistryView (applications the backend
// reports as deployed) and, on demand, a BuildModal that composes and
// submits a build request. Network calls run as tea.Cmds against a
// deploy.Client and come back as messages; every result carries the
// sequence number or composer ID it belongs to so that stale results are
// dropped.
//
// Keys follow a spacemacs-style scheme: single keys for common actions and
// SPC-prefixed sequences with a transient help bar (see KeybindRegistry).
package ui
