package main

import (
	"github.com/meysamhadeli/blobsync/cmd"
)

func main() {
	cmd.Execute()
}
