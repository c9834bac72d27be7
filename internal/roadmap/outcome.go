package roadmap

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var outcomeTemplates = []string{
	"Master %s through hands-on projects",
	"Build practical applications with %s",
	"Implement real-world solutions using %s",
	"Develop proficiency in %s with exercises",
	"Create portfolio projects showcasing %s",
}

// outcome phrases a week's goal. The template is picked from a hash of the
// skill names so the same week always reads the same.
func outcome(names []string) string {
	if len(names) == 0 {
		return noMissingSkillsOutcome
	}
	idx := xxhash.Sum64String(strings.Join(names, "\x00")) % uint64(len(outcomeTemplates))
	return fmt.Sprintf(outcomeTemplates[idx], joinNames(names))
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
