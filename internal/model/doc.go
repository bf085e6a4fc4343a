package model

// Package model defines domain data structures shared by the router, the
// transfer orchestrator and the UI: media kinds and directions, transfer
// requests with their file descriptors, and the tagged transfer outcome.
