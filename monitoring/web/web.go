// Package web includes the static page of the generator monitor.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"runtime"
	"strings"
)

//go:embed dist/*
var staticAssets embed.FS

// GetAssets returns the static assets
func GetAssets() http.FileSystem {
	if isDevelopmentMode() {
		_, assetPath, _, ok := runtime.Caller(0)
		if !ok {
			panic("error getting path")
		}

		assetPath = path.Join(path.Dir(assetPath), "dist")

		fmt.Fprintf(os.Stderr,
			"In monitor development mode, serving assets from %s\n", assetPath)

		return http.Dir(assetPath)
	}

	subFS, err := fs.Sub(staticAssets, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(subFS)
}

// isDevelopmentMode returns true if environment variable DATAGEN_MONITOR_DEV
// is set to true or 1.
func isDevelopmentMode() bool {
	evValue, exist := os.LookupEnv("DATAGEN_MONITOR_DEV")
	if !exist {
		return false
	}

	return strings.ToLower(evValue) == "true" || evValue == "1"
}
