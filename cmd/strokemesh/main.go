// strokemesh runs recorded strokes through the sketch pipeline and writes the
// resulting shapes as Wavefront OBJ.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/conic-sketch/internal/config"
	"github.com/Faultbox/conic-sketch/internal/logger"
	"github.com/Faultbox/conic-sketch/internal/sketch"
	"github.com/Faultbox/conic-sketch/internal/strokefile"
)

var (
	flagIn  = flag.String("in", "", "Stroke YAML file (required)")
	flagOut = flag.String("out", "", "OBJ output path (default stdout)")
)

func main() {
	config.ParseFlags()

	if *flagIn == "" {
		fmt.Fprintln(os.Stderr, "Usage: strokemesh -in stroke.yaml [-out shape.obj] [-projection best_fit]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// stdout may carry the OBJ.
	if err := logger.InitStderr(cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *flagIn, *flagOut); err != nil {
		logger.Error("strokemesh failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, in, out string) error {
	doc, err := strokefile.ReadFile(in)
	if err != nil {
		return err
	}

	pipeline, err := sketch.NewPipeline(cfg.Drawing, cfg.Collider)
	if err != nil {
		return err
	}
	rec := sketch.NewRecorder(sketch.RecorderConfigFrom(cfg.Drawing))

	var shapes []strokefile.Shape
	for i, s := range doc.Strokes {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("%s_%d", sketch.ArtifactName, i)
		}

		stroke, err := s.Replay(rec)
		if err != nil {
			logger.Warn("stroke discarded", zap.String("stroke", name), zap.Error(err))
			continue
		}
		a, err := pipeline.Build(stroke)
		if err != nil {
			logger.Warn("stroke discarded", zap.String("stroke", name), zap.Error(err))
			continue
		}
		logger.Info("shape built",
			zap.String("stroke", name),
			zap.Int("vertices", len(a.Mesh.Vertices)),
			zap.Int("triangles", a.Mesh.TriangleCount()),
			zap.Bool("complete", a.Complete),
		)
		shapes = append(shapes, strokefile.Shape{Name: name, Artifact: a})
	}

	if len(shapes) == 0 {
		return fmt.Errorf("%s: every stroke was discarded", in)
	}

	if out == "" {
		return strokefile.WriteOBJ(os.Stdout, shapes)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	return writeAndClose(f, shapes)
}

// writeAndClose writes shapes to wc and reports the close error too, so a
// failed flush to disk is not lost.
func writeAndClose(wc io.WriteCloser, shapes []strokefile.Shape) error {
	if err := strokefile.WriteOBJ(wc, shapes); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
