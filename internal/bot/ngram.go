package bot

// NGramModel keeps frequency tables over move sequences of length 1..maxOrder
// and predicts the next move by longest-context back-off. Tables grow without
// bound; nothing is ever pruned.
type NGramModel struct {
	maxOrder int
	// tables[n-1] maps an encoded prefix of length n-1 to next-move counts.
	// The order-1 table has a single empty prefix.
	tables []map[string][]int
}

// defaultSmoothing is the Laplace prior added to every slot before counts.
const defaultSmoothing = 0.1

// NewNGramModel creates a model tracking orders 1..maxOrder.
func NewNGramModel(maxOrder int) *NGramModel {
	if maxOrder < 1 {
		maxOrder = 1
	}
	tables := make([]map[string][]int, maxOrder)
	for i := range tables {
		tables[i] = make(map[string][]int)
	}
	return &NGramModel{maxOrder: maxOrder, tables: tables}
}

// encodeMoves packs a move sequence into a compact map key.
func encodeMoves(seq []int) string {
	b := make([]byte, len(seq))
	for i, mv := range seq {
		b[i] = byte(mv)
	}
	return string(b)
}

// Update folds a sequence of observed moves into the count tables. For each
// position, every order whose full prefix is available inside the sequence
// increments the count of the observed next move under that prefix.
func (m *NGramModel) Update(seq []int) {
	for i, mv := range seq {
		for n := 1; n <= m.maxOrder; n++ {
			if i < n-1 {
				continue
			}
			key := encodeMoves(seq[i-n+1 : i])
			counts := m.tables[n-1][key]
			if counts == nil {
				counts = make([]int, numMoves)
				m.tables[n-1][key] = counts
			}
			counts[mv-1]++
		}
	}
}

// Predict returns a probability distribution over the next move given the
// most recent moves. Starting from a uniform Laplace prior, orders are
// searched from the longest usable context down to 1; the first order with
// observed counts for its context contributes them and the search stops.
// With no history at all the result is uniform.
func (m *NGramModel) Predict(recent []int, smoothing float64) dist {
	probs := make(dist, numMoves)
	for i := range probs {
		probs[i] = smoothing
	}
	if len(recent) == 0 {
		return probs.normalize()
	}

	start := m.maxOrder
	if len(recent) < start {
		start = len(recent)
	}
	for n := start; n >= 1; n-- {
		key := encodeMoves(recent[len(recent)-(n-1):])
		counts, ok := m.tables[n-1][key]
		if !ok {
			continue
		}
		total := 0
		for i, c := range counts {
			probs[i] += float64(c)
			total += c
		}
		if total > 0 {
			break
		}
	}
	return probs.normalize()
}
