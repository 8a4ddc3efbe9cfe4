package condition

// Walk traverses the tree depth-first, pre-order, calling fn for every node.
// Returning false from fn skips the node's operands; traversal of siblings
// continues. Walk is the inspection entry point for adapters that prefer a
// callback over a manual type switch.
func Walk(c Condition, fn func(Condition) bool) {
	if c == nil {
		return
	}
	if !fn(c) {
		return
	}
	if comb, ok := c.(Combinator); ok {
		for _, operand := range comb.operands {
			Walk(operand, fn)
		}
	}
}
