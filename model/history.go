package model

const defaultHistorySize = 5

// History keeps the hashes of recent generations to detect still lifes and short cycles
type History struct {
	size   int
	hashes []string
}

// NewHistory creates a History retaining up to size hashes
func NewHistory(size int) *History {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &History{size: size}
}

// Observe records hash and reports whether it matches one of the retained generations
func (h *History) Observe(hash string) bool {
	stagnant := false
	for _, prev := range h.hashes {
		if prev == hash {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

// Reset forgets every recorded hash
func (h *History) Reset() {
	h.hashes = nil
}
