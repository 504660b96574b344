// Package file provides the file-based implementation of driven.ConfigStore.
//
// The configuration is a single TOML, JSON (comments allowed) or YAML file,
// chosen by extension. Watcher reloads it on change while serving.
package file
