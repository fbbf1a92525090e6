package graph

// Op is the enumerated kind of the operation that produced a node.
//
// Every backward rule is implemented by a single exhaustive dispatch on
// this tag (see Graph.stepBackward), so the rule set is statically
// enumerable and testable in isolation. No per-node closures exist.
type Op uint8

// Operation kinds.
const (
	OpLeaf Op = iota // input/parameter node, no predecessors
	OpAdd            // elementwise addition
	OpMul            // elementwise multiplication
	OpNeg            // elementwise negation
)

// String returns the diagnostic label of the operation. Leaves render as
// the empty string. Labels are debug output only, never control flow.
func (op Op) String() string {
	switch op {
	case OpLeaf:
		return ""
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpNeg:
		return "neg"
	default:
		return "unknown"
	}
}
