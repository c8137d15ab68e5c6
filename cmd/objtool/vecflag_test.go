package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshkit/pkg/math"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		in      string
		want    math.Vec3
		wantErr bool
	}{
		{"1,2,3", math.V3(1, 2, 3), false},
		{" 0.5, -1 ,2e1", math.V3(0.5, -1, 20), false},
		{"2", math.V3(2, 2, 2), false},
		{"1,2", math.Vec3{}, true},
		{"1,2,3,4", math.Vec3{}, true},
		{"a,b,c", math.Vec3{}, true},
		{"", math.Vec3{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseVec3(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVec3Flag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	kd := newVec3Flag(fs, "kd", "")
	ks := newVec3Flag(fs, "ks", "")

	require.NoError(t, fs.Parse([]string{"-kd", "1,0,0", "in.obj"}))
	assert.True(t, kd.set)
	assert.Equal(t, math.V3(1, 0, 0), kd.v)
	assert.False(t, ks.set)
	assert.Equal(t, []string{"in.obj"}, fs.Args())

	assert.Error(t, fs.Parse([]string{"-ks", "red"}))
}
