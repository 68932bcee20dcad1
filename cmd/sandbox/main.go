package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"impulse3d/internal/game"
	"impulse3d/internal/scene"

	flag "github.com/ogier/pflag"
)

func main() {
	sceneName := flag.StringP("scene", "s", "ball_skid", "builtin scene name or path to a .json/.yaml/.toml file")
	snapshot := flag.String("snapshot", "snapshot.yaml", "where F5 writes the current state")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: sandbox [flags]\n\nbuiltin scenes: %s\n\n", strings.Join(scene.BuiltinNames(), ", "))
		flag.PrintDefaults()
	}
	flag.Parse()

	g, err := game.New(*sceneName)
	if err != nil {
		log.Fatalf("sandbox: %v", err)
	}
	g.SnapshotPath = *snapshot
	g.Run()
}
