package game

import "github.com/sheikhrachel/termlife/model"

// historySize is enough to recognise still lifes and period-2 oscillators
const historySize = 3

// history remembers the hashes of the most recent generations
type history struct {
	hashes []string
}

// record adds g and reports whether it repeats one of the remembered generations
func (h *history) record(g *model.Grid) bool {
	hash := g.Hash()
	repeated := false
	for _, prev := range h.hashes {
		if prev == hash {
			repeated = true
			break
		}
	}

	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return repeated
}
