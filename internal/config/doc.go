// Package config holds the defaults and limits the ulidkit CLI passes into
// the core. The core packages never read files or environment variables
// themselves; the command layer loads a Config here and hands the values down
// as explicit parameters.
package config
