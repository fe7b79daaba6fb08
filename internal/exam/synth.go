package exam

import (
	"fmt"
	"strings"

	"github.com/stemsi/gatemock-backend/internal/model"
)

const synthesizedPrefix = "gen_"

// branchConcepts is the general vocabulary used for Full Syllabus filler.
var branchConcepts = map[model.Subject][]string{
	model.SubjectCSE:        {"Paging", "Scheduling", "Normalization", "TCP/IP", "Trees", "Graphs", "Logic Gates"},
	model.SubjectMech:       {"Entropy", "Stress", "Fluid Dynamics", "Gears", "Turbines", "Heat Exchangers"},
	model.SubjectCivil:      {"Soil", "Concrete", "Traffic Flow", "Beams", "Hydraulics"},
	model.SubjectElectrical: {"Transformers", "Motors", "KCL/KVL", "Flux", "Inverters"},
	model.SubjectENTC:       {"Diodes", "Signals", "Modulation", "Antennas", "Op-Amps"},
	model.SubjectIT:         {"Web", "Databases", "Networking", "Software Engg", "Security"},
	model.SubjectGeneral:    {"Logic", "Math", "Verbal"},
}

// conceptPool returns the phrases filler questions are built around.
func conceptPool(cfg Config) []string {
	if cfg.IsFullSyllabus() {
		if pool, ok := branchConcepts[cfg.Subject]; ok {
			return pool
		}
		return branchConcepts[model.SubjectCSE]
	}
	return []string{
		cfg.Topic,
		cfg.Topic + " Fundamentals",
		"Advanced " + cfg.Topic,
		cfg.Topic + " Applications",
		cfg.Topic + " Principles",
	}
}

// Synthesize builds count templated filler questions, numbered from
// startIndex+1. The output depends only on cfg, count and startIndex.
func Synthesize(cfg Config, count, startIndex int) []model.Question {
	if count <= 0 {
		return nil
	}

	seed := SeedFromString(cfg.SeedString())
	seq := NewSequence(seed)
	pool := conceptPool(cfg)

	out := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		concept := pool[seq.Intn(len(pool))]
		correct := seq.Intn(model.OptionCount)

		out = append(out, model.Question{
			// Signed formatting keeps ids identical to those the web client
			// generated for the same selection.
			ID: fmt.Sprintf("%s%d_%d", synthesizedPrefix, int32(seed), i),
			Text: fmt.Sprintf(
				"[%s] Q%d: Analyze the characteristics of %s in the context of %s. Which of the following statements is theoretically valid?",
				cfg.TestName, startIndex+i+1, concept, cfg.Topic,
			),
			Options: []string{
				fmt.Sprintf("The efficiency increases exponentially with load factor when %s is optimized.", concept),
				fmt.Sprintf("It remains invariant under standard operating conditions for %s.", cfg.Topic),
				fmt.Sprintf("The derivative is inversely proportional to the input coefficient of %s.", concept),
				fmt.Sprintf("System stability depends entirely on external environmental variables regarding %s.", concept),
			},
			CorrectAnswer: correct,
			Explanation: fmt.Sprintf(
				"Simulated Answer: The correct principle for %s relies on conservation laws pertinent to %s. Specifically, optimal performance is achieved when boundary conditions are met.",
				concept, cfg.Topic,
			),
			Subject:    cfg.Subject,
			Topic:      cfg.Topic,
			Difficulty: model.DifficultyMedium,
		})
	}
	return out
}

// IsSynthesized reports whether q was produced by Synthesize.
func IsSynthesized(q model.Question) bool {
	return strings.HasPrefix(q.ID, synthesizedPrefix)
}
