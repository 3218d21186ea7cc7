package main

import "reminders/cmd/server/cmd"

func main() {
	cmd.Execute()
}
