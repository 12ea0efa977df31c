package main

import "github.com/goplus/polly/cmd/polly/internal"

func main() {
	internal.Execute()
}
