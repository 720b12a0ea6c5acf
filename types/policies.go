package types

// Policy maps an observation to a maintenance action.
// Implementations keep no state between calls: the same observation always
// yields the same action, shaped like the observation.
type Policy interface {
	Name() string
	Act(*Observation) Action
}

// PolicyFunc adapts a plain function to the Policy interface
type PolicyFunc struct {
	name string
	act  func(*Observation) Action
}

var _ Policy = &PolicyFunc{}

func NewPolicyFunc(name string, act func(*Observation) Action) *PolicyFunc {
	return &PolicyFunc{name: name, act: act}
}

func (p *PolicyFunc) Name() string {
	return p.name
}

func (p *PolicyFunc) Act(obs *Observation) Action {
	return p.act(obs)
}
