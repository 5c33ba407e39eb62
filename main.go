package main

import (
	"github.com/trustdns/anchord/cmd"
)

func main() {
	cmd.Execute()
}
