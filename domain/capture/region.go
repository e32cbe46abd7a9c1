package capture

import (
	"errors"
	"image"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// ParseGeometry parses a Tk geometry string into a screen rectangle.
func ParseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// SelectableGrabber forwards to the grabber chosen by the most recent Select.
// The choice takes effect on the next Open, so a running session keeps its
// device until it is stopped.
type SelectableGrabber struct {
	mu   sync.Mutex
	next Grabber
	cur  Grabber
}

// Select sets the grabber used from the next Open on.
func (s *SelectableGrabber) Select(g Grabber) {
	s.mu.Lock()
	s.next = g
	s.mu.Unlock()
}

func (s *SelectableGrabber) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == nil {
		return errors.New("capture: no frame source selected")
	}
	s.cur = s.next
	return s.cur.Open()
}

func (s *SelectableGrabber) Grab() (*image.RGBA, error) {
	s.mu.Lock()
	g := s.cur
	s.mu.Unlock()
	if g == nil {
		return nil, errors.New("capture: not open")
	}
	return g.Grab()
}

func (s *SelectableGrabber) Close() error {
	s.mu.Lock()
	g := s.cur
	s.cur = nil
	s.mu.Unlock()
	if g == nil {
		return nil
	}
	return g.Close()
}
