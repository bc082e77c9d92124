// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Every setting has a built-in default, so the tool runs without a config
// file at all.
package config
