package main

import "github.com/jkothapalli/netpong/internal/cli"

func main() {
	cli.Execute()
}
