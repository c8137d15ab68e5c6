package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/meshkit/pkg/math"
)

// vec3Flag is a flag.Value holding a comma-separated x,y,z triple.
type vec3Flag struct {
	v   math.Vec3
	set bool
}

func newVec3Flag(fs *flag.FlagSet, name, usage string) *vec3Flag {
	f := &vec3Flag{}
	fs.Var(f, name, usage)
	return f
}

func (f *vec3Flag) String() string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f *vec3Flag) Set(s string) error {
	v, err := parseVec3(s)
	if err != nil {
		return err
	}
	f.v = v
	f.set = true
	return nil
}

// parseVec3 parses "x,y,z". A single value is applied to all three
// components.
func parseVec3(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var c [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("invalid component %q: %w", p, err)
		}
		c[i] = float32(f)
	}
	if len(parts) == 1 {
		c[1], c[2] = c[0], c[0]
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}
