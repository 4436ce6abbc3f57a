package main

import "github.com/marcus/p75/cmd"

// Version is stamped by release builds: -ldflags "-X main.Version=v1.2.3"
var Version = ""

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
