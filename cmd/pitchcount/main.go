// Command pitchcount builds per-pitcher count transition matrices from MLB
// play-by-play data and prints them to the terminal.
package main

func main() {
	Execute()
}
