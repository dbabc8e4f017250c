package turn

// Step is the work a node performs when executed.
type Step func(*State)

// Node is one step of a turn sequence. A plain node always continues to its
// successor. A decision node waits until its flag has been written to the
// shared State and then branches: zero goes to the primary successor, any
// other value to the alternate one.
type Node struct {
	label string
	state *State
	step  Step
	next  *Node
	dec   *decision
}

type decision struct {
	flag     Flag
	alt      *Node
	timed    bool
	executed bool
}

// NewAction returns a plain node.
func NewAction(label string, state *State, step Step, next *Node) *Node {
	return &Node{label: label, state: state, step: step, next: next}
}

// NewDecision returns a decision node branching on flag. timed marks
// decisions that are offered to a player and bounded by a timeout.
func NewDecision(label string, state *State, flag Flag, timed bool, step Step, primary, alternate *Node) *Node {
	return &Node{
		label: label,
		state: state,
		step:  step,
		next:  primary,
		dec:   &decision{flag: flag, alt: alternate, timed: timed},
	}
}

// Execute runs the node's step. A decision runs its step only the first time.
func (n *Node) Execute() {
	if n.dec != nil {
		if n.dec.executed {
			return
		}
		n.dec.executed = true
	}
	if n.step != nil {
		n.step(n.state)
	}
}

// Next returns the node to run after this one. A decision returns itself
// until its flag is written; nil ends the sequence.
func (n *Node) Next() *Node {
	if n.dec == nil {
		return n.next
	}
	v, ok := n.state.Flag(n.dec.flag)
	if !ok {
		return n
	}
	if v == FlagNo {
		return n.next
	}
	return n.dec.alt
}

// InjectProperty applies auxiliary values to the shared State.
func (n *Node) InjectProperty(props ...Property) {
	for _, p := range props {
		p(n.state)
	}
}

// InjectFlag resolves the decision with v. It reports false, and changes
// nothing, for plain nodes and for decisions that already hold a value.
func (n *Node) InjectFlag(v int) bool {
	if n.dec == nil {
		return false
	}
	return n.state.setFlag(n.dec.flag, v)
}

// IsDecision reports whether the node branches on a flag.
func (n *Node) IsDecision() bool { return n.dec != nil }

// Flag returns the decision flag, or "" for a plain node.
func (n *Node) Flag() Flag {
	if n.dec == nil {
		return ""
	}
	return n.dec.flag
}

// TimeBounded reports whether the decision waits on a player under a timeout.
func (n *Node) TimeBounded() bool { return n.dec != nil && n.dec.timed }

// Resolved reports whether a decision's flag has been written.
func (n *Node) Resolved() bool {
	if n.dec == nil {
		return false
	}
	_, ok := n.state.Flag(n.dec.flag)
	return ok
}

// Executed reports whether a decision has already run its step.
func (n *Node) Executed() bool { return n.dec != nil && n.dec.executed }

// Label is a short human readable description of the step.
func (n *Node) Label() string { return n.label }

// State returns the bag shared with the rest of the sequence.
func (n *Node) State() *State { return n.state }

// Primary returns the plain successor, or the zero branch of a decision.
func (n *Node) Primary() *Node { return n.next }

// Alternate returns the non-zero branch of a decision, or nil.
func (n *Node) Alternate() *Node {
	if n.dec == nil {
		return nil
	}
	return n.dec.alt
}
