/*
Copyright © 2026 Martin Kleist
*/
package main

import "github.com/mkleist/serline/cmd"

func main() {
	cmd.Execute()
}
