package publish

import "errors"

// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNotConnected is returned when publishing on a disconnected client.
	ErrNotConnected = errors.New("publish: client not connected")

	// ErrConnectionFailed is returned when the initial connection attempt fails.
	ErrConnectionFailed = errors.New("publish: connection failed")

	// ErrPublishFailed is returned when the broker does not accept a message.
	ErrPublishFailed = errors.New("publish: publish failed")

	// ErrInvalidTopic is returned for an empty topic or one with wildcards.
	ErrInvalidTopic = errors.New("publish: invalid topic")
)
