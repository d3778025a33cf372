package main

import "github.com/syncronet/athletos-web/cmd"

func main() {
	cmd.Execute(SERVER_SIGNATURE)
}
