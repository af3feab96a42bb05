// SPDX-License-Identifier: MIT

// Package kv provides the durable string-keyed stores the palette catalog
// persists into.
package kv

import (
	"errors"
)

var (
	// ErrQuotaExceeded is returned by Write when the value does not fit
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
	// ErrUnavailable is returned by Write when no storage is available
	ErrUnavailable = errors.New("kv: storage unavailable")
)

// Substrate is a synchronous string-keyed store. Read reports ok=false for a
// key that was never written. Remove of an absent key is not an error.
type Substrate interface {
	Read(key string) (value string, ok bool, err error)
	Write(key, value string) error
	Remove(key string) error
}

// Unavailable is the substrate of a context with no storage: every key is
// absent and every write fails.
type Unavailable struct{}

func (Unavailable) Read(string) (string, bool, error) { return "", false, nil }

func (Unavailable) Write(string, string) error { return ErrUnavailable }

func (Unavailable) Remove(string) error { return nil }
