package transport

import "errors"

// ErrTransport marks failures where no usable response was received
var ErrTransport = errors.New("transport failure")

// IsTransportFailure reports whether err came from the network layer
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrTransport)
}
