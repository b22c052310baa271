package main

import "github.com/anwar-ulhaq/Library-Backend/cmd"

func main() {
	cmd.Execute()
}
