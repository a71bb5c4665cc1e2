package render

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
)

const rsvgBinary = "rsvg-convert"

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG, scaled by zoom (2.0 doubles the
// resolution).
func ToPNG(svg []byte, zoom float64) ([]byte, error) {
	return convert(svg, "png", "-z", strconv.FormatFloat(zoom, 'f', 2, 64))
}

func convert(svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(rsvgBinary)
	if err != nil {
		return nil, fmt.Errorf("%s output needs %s. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format, rsvgBinary)
	}

	cmd := exec.Command(bin, append([]string{"-f", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", rsvgBinary, err, stderr.String())
	}
	return stdout.Bytes(), nil
}
