// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey names the request-scoped values middleware attaches to a
// [context.Context]. Only [ctxutil] reads and writes them.
package ctxkey

// Key is a context key. Its distinct type keeps it apart from string keys.
type Key int

const (
	// RequestID holds the X-Request-ID correlation value.
	RequestID Key = iota + 1
	// Claims holds the verified [sec.AuthClaims] of the caller.
	Claims
	// Logger holds the request logger tagged with method, path and request id.
	Logger
)
