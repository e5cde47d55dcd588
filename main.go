package main

import "github.com/vibast-solutions/ms-go-webhooks/cmd"

func main() {
	cmd.Execute()
}
