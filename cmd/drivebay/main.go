package main

import "github.com/drivebay/drivebay/internal/cli"

func main() {
	cli.Execute()
}
