// Command cubeview renders a spinning, lit cube with the glmath kernel
// supplying every projection, view and model transform.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

type config struct {
	width, height int
	fov           float64 // vertical, degrees
	speed         float64 // keyframes per second
	seed          int64
}

func parseConfig(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("cubeview", flag.ContinueOnError)
	fs.IntVar(&cfg.width, "width", 640, "window width in pixels")
	fs.IntVar(&cfg.height, "height", 480, "window height in pixels")
	fs.Float64Var(&cfg.fov, "fov", 60, "vertical field of view in degrees")
	fs.Float64Var(&cfg.speed, "speed", 0.5, "cube keyframes per second")
	fs.Int64Var(&cfg.seed, "seed", 1, "seed for the camera drift noise")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.width <= 0 || cfg.height <= 0 {
		return config{}, fmt.Errorf("window size %dx%d must be positive", cfg.width, cfg.height)
	}
	if cfg.fov <= 0 || cfg.fov >= 180 {
		return config{}, fmt.Errorf("field of view %v must be between 0 and 180 degrees", cfg.fov)
	}
	if cfg.speed <= 0 {
		return config{}, fmt.Errorf("speed %v must be positive", cfg.speed)
	}
	return cfg, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Error parsing flags: %v", err)
	}

	ebiten.SetWindowSize(cfg.width, cfg.height)
	ebiten.SetWindowTitle("glmath cube viewer")
	if err := ebiten.RunGame(NewGame(cfg)); err != nil {
		log.Fatal(err)
	}
}
