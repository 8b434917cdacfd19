package main

import "github.com/home-sentry/home-sentry/cmd/home-sentry/cmd"

func main() {
	cmd.Execute()
}
