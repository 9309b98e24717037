package main

import (
	"fmt"
	"runtime"

	"github.com/adewale/imgdb/internal/metaextract"
)

func versionCommand() error {
	fmt.Println("imgdb - content-addressed image catalog")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if metaextract.RAWSupported() {
		fmt.Printf("RAW support: enabled (%s)\n", metaextract.RawBackend)
	} else {
		fmt.Printf("RAW support: disabled (%s)\n", metaextract.RawBackend)
	}
	return nil
}
