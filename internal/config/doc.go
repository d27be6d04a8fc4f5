// Package config manages TrackerLens configuration.
//
// Configuration comes from three layers, in increasing precedence:
//   - NewConfig() defaults
//   - an optional YAML configuration file (.trackerlens)
//   - CLI flags
//
// Design decision: We keep a single flat Config struct populated once after
// CLI parsing and passed through the application via dependency injection
// rather than global state. Validation happens once, up front, with
// sentinel errors so callers can branch with errors.Is.
package config
