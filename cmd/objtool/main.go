// objtool is a CLI utility for inspecting and editing Wavefront OBJ meshes.
package main

import (
	"fmt"
	"os"

	"github.com/Faultbox/meshkit/internal/config"
	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/internal/model"
)

var cfg *config.Config

func main() {
	config.ParseFlags()

	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	logger.Sugar.Debugf("objtool %s (encoding %s, config %q)", args[0], cfg.Loader.Encoding, config.ConfigPath())

	command := args[0]
	args = args[1:]

	var cmdErr error
	switch command {
	case "info":
		cmdErr = cmdInfo(args)
	case "groups", "ls":
		cmdErr = cmdGroups(args)
	case "convert":
		cmdErr = cmdConvert(args)
	case "material", "mat":
		cmdErr = cmdMaterial(args)
	case "transform", "xf":
		cmdErr = cmdTransform(args)
	case "watch":
		cmdErr = cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ mesh utility

Usage:
  objtool [global options] <command> [options]

Global options:
  -config <file>     Config file (.yaml or .toml)
  -encoding <name>   Text encoding of mesh files (default utf-8)
  -log-file <file>   Also write logs to a rotated file
  -debug             Enable debug logging

Commands:
  info <file.obj>                          Show mesh summary
  groups <file.obj>                        List groups with ranges and materials
  convert <in.obj> <out.obj>               Load and re-save (positions and materials only)
  material [options] <in.obj> <out.obj>    Replace a group's material
      -group N -ka r,g,b -kd r,g,b -ks r,g,b -ns shininess
  transform [options] <in.obj> <out.obj>   Transform a group's vertices
      -group N -t x,y,z -r x,y,z (degrees) -s x,y,z
  watch <file.obj>                         Reload and summarize on change

Examples:
  objtool info cube.obj
  objtool -encoding euc-kr groups prontera.obj
  objtool material -group 1 -kd 1,0,0 cube.obj red.obj
  objtool transform -group 0 -t 0,1,0 -r 0,90,0 cube.obj moved.obj`)
}

// loadModel loads path with the configured loader options.
func loadModel(path string) (*model.Model, error) {
	m := model.New(model.LoadOptions{Encoding: cfg.Loader.Encoding})
	if err := m.Load(path); err != nil {
		return nil, err
	}
	return m, nil
}
