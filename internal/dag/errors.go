package dag

import (
	"fmt"
	"strings"
)

// UnresolvedDependencyError reports a name that is neither a config value
// nor any step's output. RequiredBy is empty when the name was requested
// directly.
type UnresolvedDependencyError struct {
	Name       string
	RequiredBy string
}

func (e *UnresolvedDependencyError) Error() string {
	if e.RequiredBy == "" {
		return fmt.Sprintf("unresolved dependency %q: not a config value or step output", e.Name)
	}
	return fmt.Sprintf("unresolved dependency %q required by step %q: not a config value or step output", e.Name, e.RequiredBy)
}

// CyclicDependencyError reports a dependency chain that revisits a step
// still being resolved. Each element of Chain depends on the next.
type CyclicDependencyError struct {
	Chain []string
}

func (e *CyclicDependencyError) Error() string {
	return "cyclic dependency: " + strings.Join(e.Chain, " -> ")
}
