// Package transfer implements the submission pipeline: URL submissions
// posted as JSON and multi-file uploads streamed as multipart requests.
// It turns every backend response into an outcome, tracks per-file
// progress for upload batches, and reports results through dialogs.
package transfer
