// Package notify shows transient status banners.
//
// A banner targets a named region (for example "signInMessage"), is drawn in
// one of two fixed style profiles, and hides itself after a fixed delay
// (4000 ms by default). Calling Show again for the same region replaces the
// message and restarts the delay; the earlier hide timer is invalidated.
package notify
