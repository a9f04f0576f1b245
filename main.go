package main

import "github.com/open-filament/ofdb/cmd"

func main() {
	cmd.Execute()
}
