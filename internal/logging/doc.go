// Package logging provides a unified logging interface for the numtheory tools.
// Components log through the Logger interface with typed fields; the zerolog
// adapter writes JSON lines filtered by the global level set with SetLevel.
package logging
