package main

import "github.com/pluginhost/pluginhost/cmd"

// version can be set during build with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
