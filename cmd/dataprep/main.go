// Package main is the entry point of the dataprep command.
package main

func main() {
	Execute()
}
