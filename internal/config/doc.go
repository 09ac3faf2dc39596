// Package config loads and validates the stitch tool settings.
//
// Settings live in a TOML file resolved from --config, ./stitch.toml, or
// ~/.config/stitch/config.toml, in that order. They cover tool binaries,
// workspace and log directories, normalization worker count, and the probe
// cache. The composition manifest (what to render) is a separate YAML
// document handled by the manifest package.
package config
