package main

import "github.com/saadjs/healthy-cli/cmd/healthy"

func main() {
	healthy.Execute()
}
