package tools

import (
	"fmt"
	"image"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// nextFileName suggests the next numbered file in dir: 1.ext, 2.ext...
func nextFileName(dir, ext string) string {
	files, _ := filepath.Glob(filepath.Join(dir, "*"+ext))

	maxIdx := 0
	for _, f := range files {
		base := filepath.Base(f)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		// "12-ring" -> 12
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r < '0' || r > '9'
		})
		if len(parts) == 0 {
			continue
		}
		if idx, err := strconv.Atoi(parts[0]); err == nil && idx > maxIdx {
			maxIdx = idx
		}
	}
	return fmt.Sprintf("%d%s", maxIdx+1, ext)
}

// parseRect reads "x,y,w,h"
func parseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("crop %q: want x,y,w,h", s)
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("crop %q: %w", s, err)
		}
		n[i] = v
	}
	if n[2] <= 0 || n[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("crop %q: empty area", s)
	}
	return image.Rect(n[0], n[1], n[0]+n[2], n[1]+n[3]), nil
}

// crop cuts r out of img, in the image's own coordinates
func crop(img image.Image, r image.Rectangle) (image.Image, error) {
	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("image type does not support cropping")
	}
	r = r.Add(img.Bounds().Min).Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("crop area is outside the screen")
	}
	return sub.SubImage(r), nil
}

func openDir(path string) error {
	var cmd *exec.Cmd
	absPath, _ := filepath.Abs(path)

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("explorer", absPath)
	default:
		cmd = exec.Command("xdg-open", absPath)
	}
	return cmd.Run()
}
