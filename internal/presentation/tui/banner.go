package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the startup ASCII art banner for Curio.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Warm amber-to-rose gradient.
	s1 := termenv.String("   ____           _       ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String("  / ___|   _ _ __(_) ___  ").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" | |  | | | | '__| |/ _ \\ ").Foreground(p.Color("#f97316"))
	s4 := termenv.String(" | |__| |_| | |  | | (_) |").Foreground(p.Color("#fb7185"))
	s5 := termenv.String("  \\____\\__,_|_|  |_|\\___/ ").Foreground(p.Color("#f43f5e"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
