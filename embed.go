package folio

import "embed"

// EmbeddedAssets contains static assets shipped with the site: folio.js
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
