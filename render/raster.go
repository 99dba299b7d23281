package render

import "image"

// Rasterize expands the matrix into a (Cols*s) x (Rows*s) opaque image by
// replicating every cell into an s x s block. Row index f lands at block row
// Rows-1-f so frequency increases upward. It returns nil for an empty input.
func Rasterize(in Input, cfg *Config) *image.RGBA {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return rasterize(in, cfg, nil)
}

// rasterize checks abandon between rows and returns nil once it reports true
func rasterize(in Input, cfg *Config, abandon func() bool) *image.RGBA {
	if !in.HasData() {
		return nil
	}

	s := cfg.BlockScale
	if s < 1 {
		s = 1
	}

	rows, cols := in.Rows(), in.Cols()
	img := image.NewRGBA(image.Rect(0, 0, cols*s, rows*s))

	for f := range rows {
		if abandon != nil && abandon() {
			return nil
		}

		y0 := (rows - 1 - f) * s
		row := in.Row(f)

		for t, db := range row {
			c := ColorFor(db, cfg.DBFloor, cfg.DBCeiling)
			x0 := t * s

			for yy := range s {
				off := img.PixOffset(x0, y0+yy)
				for range s {
					img.Pix[off+0] = c.R
					img.Pix[off+1] = c.G
					img.Pix[off+2] = c.B
					img.Pix[off+3] = 255
					off += 4
				}
			}
		}
	}

	return img
}
