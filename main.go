package main

import "github.com/restodata/restogen/cmd"

func main() {
	cmd.Execute()
}
