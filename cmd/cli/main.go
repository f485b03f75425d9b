package main

import "github.com/audionut/upload-assistant-go/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
