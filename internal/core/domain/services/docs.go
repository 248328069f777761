// Package services contains stateless domain services that implement business
// logic spanning the order aggregate and live-connection identities.
//
// EligibilityPolicy decides whether a connected party may receive events for
// a given order. It is a pure predicate recomputed per event, so a change of
// assignment mid-flight never leaves a stale cached permission behind.
package services
