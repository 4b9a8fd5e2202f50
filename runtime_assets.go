package nodeblock

import (
	"embed"
	"io/fs"
)

// RuntimeScript is the file name of the autocomplete runtime inside
// RuntimeAssetsFS.
const RuntimeScript = "nodeblock-autocomplete.js"

//go:embed runtime/assets/*.js
var embeddedRuntimeAssets embed.FS

// RuntimeAssetsFS exposes the browser runtime that turns entity autocomplete
// inputs into suggestion lists backed by the autocomplete endpoint.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(nodeblock.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntimeAssets, "runtime/assets")
	if err != nil {
		return embeddedRuntimeAssets
	}
	return sub
}
