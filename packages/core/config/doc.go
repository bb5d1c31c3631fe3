// Package config loads optional defaults from an rc file in the
// working directory. Flags given on the command line always win over
// config values.
package config
