package exam

import (
	"sort"
	"strings"

	"github.com/stemsi/gatemock-backend/internal/model"
)

// Resolve assembles the ordered question list for cfg from the bank. It
// always returns exactly cfg.TargetSize() questions: real matches first in a
// seed-determined order, then synthesized filler for any shortfall.
func Resolve(cfg Config, bank []model.Question) []model.Question {
	target := cfg.TargetSize()

	pool := filterPool(cfg, bank)
	pool = shuffle(pool, NewSequenceFromString(cfg.SeedString()))

	if len(pool) < target {
		return append(pool, Synthesize(cfg, target-len(pool), len(pool))...)
	}
	return pool[:target]
}

// filterPool keeps questions of the requested subject and, unless the topic is
// Full Syllabus, whose topic contains or is contained in the requested topic
// (case-insensitive).
func filterPool(cfg Config, bank []model.Question) []model.Question {
	wanted := strings.ToLower(cfg.Topic)

	pool := make([]model.Question, 0, len(bank))
	for _, q := range bank {
		if q.Subject != cfg.Subject {
			continue
		}
		if !cfg.IsFullSyllabus() {
			have := strings.ToLower(q.Topic)
			if !strings.Contains(have, wanted) && !strings.Contains(wanted, have) {
				continue
			}
		}
		pool = append(pool, q)
	}
	return pool
}

// shuffle orders questions by a key drawn from seq in input order. The sort is
// stable, so ties keep bank order and identical seeds give identical output.
func shuffle(questions []model.Question, seq *Sequence) []model.Question {
	type keyed struct {
		key float64
		q   model.Question
	}

	items := make([]keyed, len(questions))
	for i, q := range questions {
		items[i] = keyed{key: 0.5 - seq.Next(), q: q}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key < items[j].key
	})

	out := make([]model.Question, len(items))
	for i, it := range items {
		out[i] = it.q
	}
	return out
}
