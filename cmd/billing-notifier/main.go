package main

import "github.com/ogulcanaydogan/aws-billing-notifier/internal/cli"

func main() {
	cli.Execute()
}
