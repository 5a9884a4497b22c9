package bot

// SlidingWindow keeps a bounded FIFO of the most recent moves and reports a
// smoothed frequency histogram over the current window.
type SlidingWindow struct {
	capacity int
	window   []int
}

// windowSmoothing avoids zero slots in the histogram.
const windowSmoothing = 0.01

// NewSlidingWindow creates a window holding at most capacity moves.
func NewSlidingWindow(capacity int) *SlidingWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &SlidingWindow{capacity: capacity}
}

// Update appends a move, evicting the oldest entry once capacity is exceeded.
func (w *SlidingWindow) Update(move int) {
	w.window = append(w.window, move)
	if len(w.window) > w.capacity {
		w.window = w.window[1:]
	}
}

// Len returns the number of moves currently in the window.
func (w *SlidingWindow) Len() int {
	return len(w.window)
}

// Distribution returns the smoothed, normalized histogram of the window.
// An empty window yields uniform.
func (w *SlidingWindow) Distribution() dist {
	if len(w.window) == 0 {
		return uniformDist()
	}
	counts := make(dist, numMoves)
	for _, mv := range w.window {
		counts[mv-1]++
	}
	for i := range counts {
		counts[i] += windowSmoothing
	}
	return counts.normalize()
}
