package main

import (
	"os"

	"github.com/chatop/chatop-api/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
