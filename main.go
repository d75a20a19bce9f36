package main

import "github.com/vqtran/devq/cmd"

func main() {
	cmd.Execute()
}
