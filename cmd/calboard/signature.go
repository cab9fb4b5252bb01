package main

import (
	"fmt"

	"github.com/fatih/color"
)

func printSignature() {
	cyan := color.New(color.FgHiCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite).SprintFunc()
	orange := color.New(color.FgHiYellow, color.Bold).SprintFunc()

	fmt.Println()
	fmt.Println(orange("  🔥 CALBOARD"))
	fmt.Printf("%s : %s\n", cyan("Project    "), white("Calorie leaderboard"))
	fmt.Printf("%s : %s\n", cyan("Endpoints  "), white("/api/data  /api/entry  /api/reset  /api/health"))
	fmt.Println()
}
