package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Faultbox/meshkit/internal/model"
	"github.com/Faultbox/meshkit/pkg/math"
)

func cmdInfo(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool info <file.obj>")
		os.Exit(1)
	}

	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	printSummary(m)
	return nil
}

func printSummary(m *model.Model) {
	b := m.Bounds()

	fmt.Printf("Mesh:      %s\n", m.Path())
	fmt.Printf("Vertices:  %d (%d triangles)\n", m.VertexCount(), m.VertexCount()/3)
	fmt.Printf("Buffer:    %.2f KB\n", float64(m.ByteLen())/1024)
	fmt.Printf("Groups:    %d\n", m.GroupCount())
	fmt.Printf("Normals:   %s\n", attributeSource(m.HasNormals(), "face normals"))
	fmt.Printf("TexCoords: %s\n", attributeSource(m.HasTexCoords(), "zero"))
	fmt.Printf("Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)

	for _, lib := range m.MaterialLibraries() {
		fmt.Printf("Library:   %s\n", lib)
	}

	if diags := m.Diagnostics(); len(diags) > 0 {
		fmt.Println()
		fmt.Printf("Diagnostics (%d):\n", len(diags))
		for _, d := range diags {
			fmt.Printf("  %s\n", d)
		}
	}
}

func attributeSource(fromFile bool, fallback string) string {
	if fromFile {
		return "from file"
	}
	return fallback
}

func cmdGroups(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: objtool groups <file.obj>")
		os.Exit(1)
	}

	m, err := loadModel(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tFIRST\tCOUNT\tDIFFUSE\tSHININESS")
	for i, r := range m.DrawRanges() {
		d := r.Material.Diffuse
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%g,%g,%g\t%g\n", i, r.Name, r.First, r.Count, d.X, d.Y, d.Z, r.Material.Shininess)
	}
	return w.Flush()
}

func cmdConvert(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool convert <in.obj> <out.obj>")
		os.Exit(1)
	}

	m, err := loadModel(args[0])
	if err != nil {
		return err
	}
	if err := m.Save(args[1]); err != nil {
		return err
	}

	fmt.Printf("Saved %d vertices in %d groups to %s\n", m.VertexCount(), m.GroupCount(), args[1])
	return nil
}

func cmdMaterial(args []string) error {
	fs := flag.NewFlagSet("material", flag.ExitOnError)
	group := fs.Int("group", 0, "Group index")
	ka := newVec3Flag(fs, "ka", "Ambient color r,g,b")
	kd := newVec3Flag(fs, "kd", "Diffuse color r,g,b")
	ks := newVec3Flag(fs, "ks", "Specular color r,g,b")
	ns := fs.Float64("ns", -1, "Shininess (negative keeps the current value)")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool material [-group N] [-ka r,g,b] [-kd r,g,b] [-ks r,g,b] [-ns s] <in.obj> <out.obj>")
		os.Exit(1)
	}

	m, err := loadModel(fs.Arg(0))
	if err != nil {
		return err
	}

	mat, err := m.GroupMaterial(*group)
	if err != nil {
		return err
	}
	if ka.set {
		mat.Ambient = ka.v
	}
	if kd.set {
		mat.Diffuse = kd.v
	}
	if ks.set {
		mat.Specular = ks.v
	}
	if *ns >= 0 {
		mat.Shininess = float32(*ns)
	}

	if err := m.ApplyMaterial(*group, mat); err != nil {
		return err
	}
	return m.Save(fs.Arg(1))
}

func cmdTransform(args []string) error {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	group := fs.Int("group", 0, "Group index")
	translate := newVec3Flag(fs, "t", "Translation x,y,z")
	rotate := newVec3Flag(fs, "r", "Rotation x,y,z in degrees")
	scale := newVec3Flag(fs, "s", "Scale x,y,z")
	scale.v = math.V3(1, 1, 1)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: objtool transform [-group N] [-t x,y,z] [-r x,y,z] [-s x,y,z] <in.obj> <out.obj>")
		os.Exit(1)
	}

	m, err := loadModel(fs.Arg(0))
	if err != nil {
		return err
	}

	t := math.Compose(translate.v, rotate.v, scale.v)
	if err := m.ApplyTransform(*group, t); err != nil {
		return err
	}
	return m.Save(fs.Arg(1))
}
