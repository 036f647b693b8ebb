// Package workers provides the background timers of the client.
//
// The only worker today is [IdleTimer], which fires once after a window of
// inactivity and is re-armed on every user interaction. The privacy session
// uses it to auto-lock the private vault.
package workers

import "time"

// Timer is a re-armable one-shot deadline.
//
// Arm starts (or restarts) the window; Stop cancels it. A callback belonging
// to a window that was re-armed or stopped before it elapsed never runs. A
// callback that is already running is told its window id, and Current
// reports false for that id once a later Arm or Stop has happened.
type Timer interface {
	Arm(d time.Duration)
	Stop()
	Deadline() (time.Time, bool)
	Current(window uint64) bool
}

var _ Timer = (*IdleTimer)(nil)
