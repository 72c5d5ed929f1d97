package main

import "github.com/frahmantamala/safety-lms/cmd"

func main() {
	cmd.Execute()
}
