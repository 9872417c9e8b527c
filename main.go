package main

import (
	"dormitory-management-system/cmd/server"
)

func main() {
	server.Init()
	server.Run()
}
