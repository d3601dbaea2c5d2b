// Package gofat is a high-level client for FAT volumes backed by an
// embedded FAT driver.
//
// A [Session] wraps a [driver.Raw] backend and exposes familiar
// filesystem calls on top of it: whole-file reads and writes,
// fopen-style open modes, directory listings and volume management.
// Open files implement the standard io interfaces and plug straight
// into [io.Copy] and friends.
//
// Operations on an unmounted session fail with [ErrNotMounted] before
// any driver call is made. Failures coming from the driver carry their
// result code and can be matched with [driver.IsCode].
package gofat

// maxChunk caps how many bytes a single driver transfer moves, keeping
// individual calls across the driver boundary bounded.
const maxChunk = 1 << 20
