package model

import (
	"fmt"

	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/wavefront"
)

// Build fan-triangulates every face of obj and flattens the result into an
// interleaved buffer. Group markers are converted from face indices to
// vertex offsets.
//
// Whether normals and texture coordinates are read from the file is decided
// once, from the first vertex of the first face. Without normals every
// triangle gets its face normal; without texture coordinates every vertex
// gets (0, 0).
func Build(obj *wavefront.OBJ) (*Mesh, error) {
	if len(obj.Faces) == 0 {
		return nil, ErrNoFaces
	}

	triangles := 0
	for fi, face := range obj.Faces {
		if len(face.Vertices) < 3 {
			return nil, fmt.Errorf("face %d: %w", fi, wavefront.ErrMalformedFace)
		}
		triangles += len(face.Vertices) - 2
	}

	first := obj.Faces[0].Vertices[0]
	hasNormals := first.Normal.Valid()
	hasTexCoords := first.TexCoord.Valid()
	buf := make([]float32, 0, triangles*3*FloatsPerVertex)

	markers := obj.Groups
	if len(markers) == 0 {
		markers = []wavefront.GroupMarker{{
			FaceIndex: 0,
			Name:      wavefront.DefaultGroupName,
			Material:  wavefront.DefaultMaterial(),
		}}
	}
	if markers[0].FaceIndex != 0 {
		return nil, fmt.Errorf("%w: first group starts at face %d", ErrGroupMarkers, markers[0].FaceIndex)
	}
	groups := make([]Group, 0, len(markers))

	for fi, face := range obj.Faces {
		// Convert face index to vertex offset
		if len(groups) < len(markers) && markers[len(groups)].FaceIndex == fi {
			g := markers[len(groups)]
			groups = append(groups, Group{
				Offset:   len(buf) / FloatsPerVertex,
				Name:     g.Name,
				Material: g.Material,
			})
		}

		v0 := face.Vertices[0]
		for i := 1; i+1 < len(face.Vertices); i++ {
			tri := [3]wavefront.FaceVertex{v0, face.Vertices[i], face.Vertices[i+1]}

			var pos [3]math.Vec3
			for j, fv := range tri {
				p, err := lookupVec3(obj.Positions, fv.Position, "position")
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", fi, err)
				}
				pos[j] = p
			}
			faceNormal := pos[1].Sub(pos[0]).Cross(pos[2].Sub(pos[1])).Normalize()

			for j, fv := range tri {
				normal := faceNormal
				if hasNormals {
					n, err := lookupOptVec3(obj.Normals, fv.Normal, "normal")
					if err != nil {
						return nil, fmt.Errorf("face %d: %w", fi, err)
					}
					normal = n
				}

				var uv math.Vec2
				if hasTexCoords {
					idx, ok := fv.TexCoord.Get()
					if !ok {
						return nil, fmt.Errorf("face %d: %w: texcoord", fi, ErrMixedAttributes)
					}
					if idx >= len(obj.TexCoords) {
						return nil, fmt.Errorf("face %d: %w: texcoord %d of %d", fi, ErrIndexOutOfRange, idx+1, len(obj.TexCoords))
					}
					uv = obj.TexCoords[idx]
				}

				buf = append(buf,
					pos[j].X, pos[j].Y, pos[j].Z,
					normal.X, normal.Y, normal.Z,
					uv.X, uv.Y,
				)
			}
		}
	}

	if len(groups) != len(markers) {
		return nil, fmt.Errorf("%w: %d of %d matched", ErrGroupMarkers, len(groups), len(markers))
	}

	return &Mesh{
		Buffer:       buf,
		Groups:       groups,
		HasNormals:   hasNormals,
		HasTexCoords: hasTexCoords,
	}, nil
}

func lookupVec3(arr []math.Vec3, idx int, what string) (math.Vec3, error) {
	if idx < 0 || idx >= len(arr) {
		return math.Vec3{}, fmt.Errorf("%w: %s %d of %d", ErrIndexOutOfRange, what, idx+1, len(arr))
	}
	return arr[idx], nil
}

func lookupOptVec3(arr []math.Vec3, idx wavefront.Index, what string) (math.Vec3, error) {
	i, ok := idx.Get()
	if !ok {
		return math.Vec3{}, fmt.Errorf("%w: %s", ErrMixedAttributes, what)
	}
	return lookupVec3(arr, i, what)
}

// computeBounds returns the bounding box of the positions in buf.
func computeBounds(buf []float32) Bounds {
	if len(buf) < FloatsPerVertex {
		return Bounds{}
	}
	b := Bounds{
		Min: math.Vec3{X: buf[0], Y: buf[1], Z: buf[2]},
		Max: math.Vec3{X: buf[0], Y: buf[1], Z: buf[2]},
	}
	for i := FloatsPerVertex; i+FloatsPerVertex <= len(buf); i += FloatsPerVertex {
		p := math.Vec3{X: buf[i], Y: buf[i+1], Z: buf[i+2]}
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}
