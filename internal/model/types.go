// Package model defines shared data structures.
package model

// Config defines test settings after merging flags and the config file.
type Config struct {
	// DurationSeconds is the countdown length.
	DurationSeconds int
	Lang            string
	TextsDir        string
	Mouse           bool
	// File skips the chooser and loads this text directly.
	File string
	// Builtin skips the chooser and uses the bundled text.
	Builtin bool
}
