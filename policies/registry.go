package policies

import (
	"fmt"
	"strings"

	"github.com/zeu5/impact-eval/types"
)

// Policy names accepted on the command line
const (
	DoNothing   = "do_nothing"
	FailReplace = "fail_replace"
	Heuristic   = "heuristic"
)

// Names lists the available policies in a stable order
func Names() []string {
	return []string{DoNothing, FailReplace, Heuristic}
}

// GetPolicy resolves a policy by name
func GetPolicy(name string) (types.Policy, error) {
	switch name {
	case DoNothing:
		return NewDoNothingPolicy(), nil
	case FailReplace:
		return NewFailReplacePolicy(), nil
	case Heuristic:
		return NewHeuristicPolicy(), nil
	}
	return nil, fmt.Errorf("%w: %q (expected one of %s)", types.ErrUnknownPolicy, name, strings.Join(Names(), ", "))
}

// GetPolicies resolves every name, failing on the first unknown one
func GetPolicies(names []string) ([]types.Policy, error) {
	out := make([]types.Policy, 0, len(names))
	for _, name := range names {
		p, err := GetPolicy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
