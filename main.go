package main

import "github.com/ktamura/kyoteidb/cmd"

func main() {
	cmd.Execute()
}
