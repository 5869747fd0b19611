// Package strokefile reads recorded strokes from YAML and writes finished
// shapes as Wavefront OBJ.
//
// A stroke file looks like:
//
//	strokes:
//	  - name: square
//	    orientation: [0, 0, 0, 1]   # x, y, z, w; identity when omitted
//	    points:
//	      - [0, 0, 0]
//	      - [1, 0, 0]
//	      ...
package strokefile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/conic-sketch/internal/sketch"
	"github.com/Faultbox/conic-sketch/pkg/math"
)

// ErrNoStrokes is returned for a file without any stroke entries.
var ErrNoStrokes = errors.New("no strokes in file")

// File is the on-disk document.
type File struct {
	Strokes []StrokeEntry `yaml:"strokes"`
}

// StrokeEntry is one raw pen path.
type StrokeEntry struct {
	Name        string       `yaml:"name"`
	Orientation []float32    `yaml:"orientation,omitempty"`
	Points      [][3]float32 `yaml:"points"`
}

// Decode parses a stroke document.
func Decode(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding strokes: %w", err)
	}
	if len(f.Strokes) == 0 {
		return nil, ErrNoStrokes
	}
	for i, s := range f.Strokes {
		if n := len(s.Orientation); n != 0 && n != 4 {
			return nil, fmt.Errorf("stroke %d: orientation needs 4 components, got %d", i, n)
		}
	}
	return &f, nil
}

// ReadFile opens and decodes path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Decode(fh)
}

// Quat returns the stroke's reference orientation.
func (s StrokeEntry) Quat() math.Quat {
	if len(s.Orientation) != 4 {
		return math.QuatIdentity()
	}
	o := s.Orientation
	return math.Quat{X: o[0], Y: o[1], Z: o[2], W: o[3]}.Normalize()
}

// Replay feeds the points through rec as if they had been sampled live, so
// decimation and closure behave exactly as with a tracked pen.
func (s StrokeEntry) Replay(rec *sketch.Recorder) (*sketch.Stroke, error) {
	rec.Begin(s.Quat())
	for _, p := range s.Points {
		rec.Record(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}
	return rec.End()
}

// Shape is a named artifact ready for export.
type Shape struct {
	Name     string
	Artifact *sketch.Artifact
}

// WriteOBJ writes shapes as objects in world space. Indices are 1-based and
// continue across objects as OBJ requires.
func WriteOBJ(w io.Writer, shapes []Shape) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# conic-sketch")

	base := 1
	for _, s := range shapes {
		a := s.Artifact
		fmt.Fprintf(bw, "o %s\n", s.Name)
		for _, v := range a.Mesh.Vertices {
			p := math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}.Add(a.Anchor)
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		for _, v := range a.Mesh.Vertices {
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}
		idx := a.Mesh.Indices
		for i := 0; i+2 < len(idx); i += 3 {
			i0, i1, i2 := base+int(idx[i]), base+int(idx[i+1]), base+int(idx[i+2])
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", i0, i0, i1, i1, i2, i2)
		}
		base += len(a.Mesh.Vertices)
	}
	return bw.Flush()
}
