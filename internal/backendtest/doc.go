// Package backendtest provides an in-process fake of the newspulse backend
// for tests of the chat and dashboard clients.
package backendtest
