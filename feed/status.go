package feed

import "fmt"

// Status describes the connection state of a Socket
type Status uint8

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusReconnecting
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "Disconnected"
	case StatusConnecting:
		return "Connecting"
	case StatusConnected:
		return "Connected"
	case StatusReconnecting:
		return "Reconnecting"
	case StatusClosed:
		return "Closed"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(s))
	}
}
