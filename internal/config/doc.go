// Package config holds linkmap's runtime configuration.
//
// Configuration flows from CLI flags into a single flat Config struct
// that is passed through the application by dependency injection; there
// is no global state. Per-site overrides (page caps, extraction
// strategy) can be supplied through a .linkmap YAML file found in the
// current or home directory, or at an explicit path.
package config
