// Package config loads optional on-disk defaults for the emulator's CLI.
// CLI flags always win over values loaded here; this package only
// supplies what the caller didn't set explicitly.
package config

import (
	"github.com/BurntSushi/toml"
)

// File is the decoded shape of a config TOML file.
//
//	debug = true
//	delay = 5
//	workers = 4
type File struct {
	Debug   bool `toml:"debug"`
	Delay   int  `toml:"delay"`
	Workers int  `toml:"workers"`
}

// Load decodes path as TOML into a File. A missing or malformed file is
// reported as an error; callers that treat the config file as optional
// should only attempt Load when the user passed --config explicitly.
func Load(path string) (File, error) {
	var f File
	_, err := toml.DecodeFile(path, &f)
	return f, err
}
