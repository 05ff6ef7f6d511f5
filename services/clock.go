package services

import "time"

// Clock supplies the current time so timestamps can be pinned in tests
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// RealClock returns the wall clock in UTC
func RealClock() Clock { return realClock{} }
