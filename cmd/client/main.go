package main

import "reminders/cmd/client/cmd"

func main() {
	cmd.Execute()
}
