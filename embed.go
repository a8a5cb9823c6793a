package folio

import "embed"

// EmbeddedAssets contains static assets shipped with the site:
// folio.css, nav-loader.js and the fallback favicon.svg.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
