package platform

// Package platform contains OS integration glue: filesystem helpers used for
// file selection and artifact storage, and launching URLs or folders with
// the system handler.
