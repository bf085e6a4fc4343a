package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It renders the router's view stack from declarative templates, wires user
// interactions to the transfer orchestrator, shows per-file upload progress and
// presents dialogs on behalf of the dialog controller. All UI strings are
// localized via Localization.
