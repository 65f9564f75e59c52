package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"voxel-raytracer/internal/mathutil"
)

// ManifestEntry represents one view in the output manifest.
type ManifestEntry struct {
	Index     int     `json:"index"`
	YawDeg    float32 `json:"yaw_deg"`
	OffsetDeg float32 `json:"offset_deg"`
	Image     string  `json:"image"`
}

// Manifest is the turntable description written next to the frames.
type Manifest struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Views  int             `json:"views"`
	Frames []ManifestEntry `json:"frames"`
}

// WriteManifest writes manifest.json listing the successful views in order.
// OffsetDeg is the shortest angle back to the first view.
func WriteManifest(path string, cfg Config, results []Result) error {
	m := Manifest{Width: cfg.Width * max(1, cfg.Upscale), Height: cfg.Height * max(1, cfg.Upscale), Views: cfg.Views}

	var base float32
	if len(results) > 0 {
		base = results[0].YawDeg
	}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Index:     r.Index,
			YawDeg:    r.YawDeg,
			OffsetDeg: mathutil.AngleDist(r.YawDeg, base),
			Image:     r.File,
		})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
