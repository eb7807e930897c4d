package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// optional .env for local development
	_ = godotenv.Load()

	var root = &cobra.Command{Use: "aisha"}

	root.AddCommand(serveCMD(), migrateCMD())
	_ = root.Execute()
}
