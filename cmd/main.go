package main

import (
	cmd "github.com/kerbaras/mangaverse/cmd/mangas"
)

func main() {
	cmd.Execute()
}
