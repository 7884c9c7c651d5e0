package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go-match-backend/internal/domain"
)

// Sub-score weights. The UI advertises "Experience 40%, Skills 20%,
// Projects 20%, Profile fit 20%"; changing them breaks comparability with
// stored scores.
const (
	ExperienceWeight = 0.40
	SkillsWeight     = 0.20
	ProjectsWeight   = 0.20
	SemanticWeight   = 0.20
)

// DefaultWeights is the weight contract published to API clients.
var DefaultWeights = domain.MatchWeights{
	Experience: ExperienceWeight,
	Skills:     SkillsWeight,
	Projects:   ProjectsWeight,
	Semantic:   SemanticWeight,
}

// Aggregate combines the four sub-scores into an overall score in [0,1].
func Aggregate(b domain.ScoreBreakdown) float64 {
	return clamp01(ExperienceWeight*b.Experience +
		SkillsWeight*b.Skills +
		ProjectsWeight*b.Projects +
		SemanticWeight*b.Semantic)
}

type contribution struct {
	label  string
	weight float64
	score  float64
}

func (c contribution) value() float64 {
	return c.weight * c.score
}

// Explain summarizes the two strongest weighted factors. Output is
// deterministic: ties keep the order experience, skills, projects, profile fit.
func Explain(b domain.ScoreBreakdown, semanticAvailable bool, missing []string) string {
	parts := []contribution{
		{"Experience", ExperienceWeight, b.Experience},
		{"Skills", SkillsWeight, b.Skills},
		{"Projects", ProjectsWeight, b.Projects},
		{"Profile fit", SemanticWeight, b.Semantic},
	}
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].value() > parts[j].value()
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall %d%%. Strongest factors: %s and %s.",
		percent(Aggregate(b)), describe(parts[0]), describe(parts[1]))
	if len(missing) > 0 {
		fmt.Fprintf(&sb, " Missing skills: %s.", strings.Join(missing, ", "))
	}
	if !semanticAvailable {
		sb.WriteString(" Profile fit not assessed: resume or job embedding unavailable.")
	}
	return sb.String()
}

func describe(c contribution) string {
	return fmt.Sprintf("%s %d%% (weight %d%%)", c.label, percent(c.score), percent(c.weight))
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
