// Headless runner: steps a scene at a fixed delta and prints body states
package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"impulse3d/internal/physics"
	"impulse3d/internal/scene"

	flag "github.com/ogier/pflag"
)

func main() {
	sceneName := flag.StringP("scene", "s", "ball_skid", "builtin scene name or path to a .json/.yaml/.toml file")
	frames := flag.IntP("frames", "n", 300, "frames to simulate")
	dt := flag.Float64P("dt", "d", 1.0/60.0, "frame delta in seconds")
	every := flag.IntP("every", "e", 60, "print body states every N frames (0 = only at the end)")
	mode := flag.StringP("mode", "m", "", "override detection mode (static|dynamic)")
	debug := flag.Bool("debug", false, "log physics reports")
	list := flag.Bool("list", false, "list builtin scenes and exit")
	out := flag.StringP("out", "o", "", "write the final state as a scene file")
	flag.Parse()

	if *list {
		for _, name := range scene.BuiltinNames() {
			fmt.Println(name)
		}
		return
	}

	f, err := scene.Open(*sceneName)
	if err != nil {
		log.Fatalf("load scene: %v", err)
	}

	cfg := f.Config(physics.DefaultConfig())
	cfg.Debug = *debug
	if *mode != "" {
		m, err := physics.ParseDetectionMode(*mode)
		if err != nil {
			log.Fatalf("mode: %v", err)
		}
		cfg.Detection = m
	}

	w := physics.NewWorld()
	objects, err := f.Spawn(w)
	if err != nil {
		log.Fatalf("spawn: %v", err)
	}

	w.OnCollisionEnter.AddListener(func(p physics.CollisionPair) {
		if *debug {
			log.Printf("Physics: enter %s / %s", nameOf(objects, p.A), nameOf(objects, p.B))
		}
	})

	fmt.Printf("scene %q: %d bodies, mode %s, dt %.4fs\n", f.Name, len(objects), cfg.Detection, *dt)
	var report physics.Report
	contacts := 0
	for i := 1; i <= *frames; i++ {
		frame := w.Step(float32(*dt), cfg)
		report = frame.Report
		contacts += len(frame.Contacts)
		if *every > 0 && i%*every == 0 {
			printStates(w, objects, i, float32(i)*float32(*dt))
		}
	}
	if *every <= 0 || *frames%*every != 0 {
		printStates(w, objects, *frames, float32(*frames)*float32(*dt))
	}
	fmt.Printf("last frame: %s; %d contacts total\n", report, contacts)

	if *out != "" {
		if err := scene.Save(*out, scene.Snapshot(w, cfg, objects)); err != nil {
			log.Fatalf("save: %v", err)
		}
	}
}

func nameOf(objects []scene.Object, h physics.Handle) string {
	for _, o := range objects {
		if o.Handle == h {
			return o.Name
		}
	}
	return h.String()
}

func printStates(w *physics.World, objects []scene.Object, frame int, t float32) {
	fmt.Printf("\nframe %d (t=%.3fs)\n", frame, t)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "body\tposition\tvelocity\tspin")
	for _, o := range objects {
		e := w.Bodies.Get(o.Handle)
		if e.Body.IsStatic() {
			continue
		}
		p, v, s := e.Transform.Translation, e.Body.LinearVelocity, e.Body.AngularVelocity
		fmt.Fprintf(tw, "%s\t(%.3f, %.3f, %.3f)\t(%.3f, %.3f, %.3f)\t%.3f\n",
			o.Name, p[0], p[1], p[2], v[0], v[1], v[2], s.Len())
	}
	tw.Flush()
}
