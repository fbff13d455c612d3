package main

import (
	"github.com/Tejaswini-Manjula/MURF-CONTEST/cmd"
	"github.com/Tejaswini-Manjula/MURF-CONTEST/internal/logging"
)

func main() {
	logging.Init()
	cmd.Execute()
}
