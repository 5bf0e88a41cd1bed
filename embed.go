package sitepanel

import "embed"

// EmbeddedAssets contains the assets shipped with the panel: the default
// logo served at /logo.svg and the base stylesheet served at /public/site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
