package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/cylinder/pkg/math3d"
	"github.com/taigrr/cylinder/pkg/models"
	"github.com/taigrr/cylinder/pkg/render"
)

// pose is the rotation a one-shot command renders at.
type pose struct {
	a, b float64
}

func (p *pose) bind(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&p.a, "angle-a", "a", 0, "rotation A about the x axis (radians)")
	cmd.Flags().Float64VarP(&p.b, "angle-b", "b", 0, "rotation B about the z axis (radians)")
}

// renderOnce renders a single frame at p for the grid the configuration
// and the terminal on stdout allow.
func renderOnce(o *options, p pose) (*render.Frame, render.Stats, error) {
	cols, lines := terminalSize(os.Stdout)
	width, height := o.cfg.GridSize(cols, lines)

	ramp, rast, err := o.cfg.Build()
	if err != nil {
		return nil, render.Stats{}, err
	}
	buf, err := render.NewDepthBuffer(width, height)
	if err != nil {
		return nil, render.Stats{}, err
	}
	frame := render.NewFrame(width, height)
	stats := rast.RenderFrame(buf, frame, ramp, p.a, p.b)
	return frame, stats, nil
}

func newFrameCmd(o *options) *cobra.Command {
	var (
		p     pose
		stats bool
	)
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Print a single frame",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			frame, st, err := renderOnce(o, p)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprint(cmd.OutOrStdout(), frame.String()); err != nil {
				return err
			}
			if stats {
				fmt.Fprintf(cmd.ErrOrStderr(), "samples=%d skipped=%d offscreen=%d front=%d back=%d\n",
					st.Samples, st.Skipped, st.Offscreen, st.Front, st.Back)
			}
			return nil
		},
	}
	p.bind(cmd)
	cmd.Flags().BoolVar(&stats, "stats", false, "print sample statistics to stderr")
	return cmd
}

func newSnapshotCmd(o *options) *cobra.Command {
	var (
		p     pose
		out   string
		scale int
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a single frame to a PNG image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			frame, _, err := renderOnce(o, p)
			if err != nil {
				return err
			}
			snap := render.NewSnapshot()
			snap.Scale = scale
			if err := snap.SavePNG(out, frame); err != nil {
				return err
			}
			slog.Info("snapshot saved", "path", out, "width", frame.Width(), "height", frame.Height())
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %dx%d frame to %s\n", frame.Width(), frame.Height(), out)
			return nil
		},
	}
	p.bind(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "cylinder.png", "output PNG path")
	cmd.Flags().IntVar(&scale, "scale", 1, "integer pixel scale")
	return cmd
}

func newExportCmd(o *options) *cobra.Command {
	var (
		p        pose
		out      string
		segments int
		rings    int
		caps     bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the cylinder as a binary glTF mesh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mesh, err := o.cfg.Cylinder().Tessellate(segments, rings, caps)
			if err != nil {
				return err
			}
			// Same orientation the rasterizer uses: A about x first, then B about z.
			mesh.Rotate(math3d.RotateZ(p.b).Mul(math3d.RotateX(p.a)))
			if err := models.SaveGLB(out, mesh); err != nil {
				return err
			}
			slog.Info("mesh exported", "path", out, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d vertices, %d triangles to %s\n", mesh.VertexCount(), mesh.TriangleCount(), out)
			return nil
		},
	}
	p.bind(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "cylinder.glb", "output GLB path")
	cmd.Flags().IntVar(&segments, "segments", 64, "segments around the axis")
	cmd.Flags().IntVar(&rings, "rings", 16, "rings along the axis")
	cmd.Flags().BoolVar(&caps, "caps", false, "close the ends with flat caps")
	return cmd
}
