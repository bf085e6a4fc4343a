package transport

// Package transport issues the client's HTTP calls to the backend: JSON POSTs
// for URL submissions and streamed multipart POSTs for file uploads. It holds
// no state beyond the HTTP client and never retries.
