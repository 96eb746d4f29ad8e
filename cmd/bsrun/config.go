package main

import "github.com/BurntSushi/toml"

// decodeTOMLFile loads a bsrun.toml config file into cfg.
func decodeTOMLFile(path string, cfg *cliConfig) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}
