// Package common contains shared constants and sentinel errors used across
// MindKeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultLookbackDays is the trailing window that decides whether data
// counts as recent.
const DefaultLookbackDays = 7
