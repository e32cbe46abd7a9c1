package assets

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

// COCONames contains the 80 COCO class names, one per line, in model output order.
//
//go:embed coco.names
var COCONames []byte

// Labels returns the embedded COCO class names.
func Labels() []string {
	labels, _ := parseLabels(bytes.NewReader(COCONames))
	return labels
}

// LoadLabels reads class names from path. An empty path returns the embedded set.
func LoadLabels(path string) ([]string, error) {
	if path == "" {
		return Labels(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	labels, err := parseLabels(f)
	if err != nil {
		return nil, fmt.Errorf("read labels %s: %w", path, err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	return labels, nil
}

func parseLabels(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
