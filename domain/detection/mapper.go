package detection

// MapToScreen converts a normalized, bottom-left origin box into a screen
// rectangle inside viewport. The result is always inside the viewport and at
// least 2x2 so degenerate boxes stay visible.
func MapToScreen(box NormRect, viewport Size) ScreenRect {
	vw, vh := viewport.Width, viewport.Height
	x := clamp(box.MinX*vw, 0, vw)
	y := clamp((1-box.MaxY())*vh, 0, vh)
	w := max(2, min(box.Width*vw, vw-x))
	h := max(2, min(box.Height*vh, vh-y))
	return ScreenRect{X: x, Y: y, Width: w, Height: h}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
