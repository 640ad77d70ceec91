package main

import "github.com/flutsign/flutsign/cmd"

func main() {
	cmd.Execute()
}
