// Command labeler walks a CSV table of videos and records 0/1 labels.
package main

import "github.com/Syuf1514/video-labeler/internal/cli"

func main() {
	cli.Execute()
}
