package streamfilter

// output pairs a keyword that terminates at a node with the ordered
// callback list registered for it.
type output struct {
	keyword   string
	callbacks []Callback
}

// anode is a node in the compiled Aho-Corasick trie. Each node carries the
// full (keyword, callbacks) pair per match, so the registry's per-keyword
// callback ordering survives compilation.
type anode struct {
	children map[rune]*anode
	fail     *anode
	// outputs enumerates every keyword ending at this node: this node's
	// own match first, followed by proper-suffix matches reached via the
	// fail chain (propagated once during compile, see buildAutomaton).
	outputs []output
}

func newANode() *anode {
	return &anode{children: make(map[rune]*anode)}
}

// buildAutomaton builds a rune trie from keywords and wires failure links
// by breadth-first traversal: phase one inserts every keyword, phase two
// assigns fail pointers level by level and propagates output lists along
// them.
func buildAutomaton(keywords map[string][]registration) (root *anode, maxLen int) {
	root = newANode()

	// Phase 1: insert every keyword into the trie.
	for kw, regs := range keywords {
		if n := len([]rune(kw)); n > maxLen {
			maxLen = n
		}
		n := root
		for _, ch := range kw {
			child, ok := n.children[ch]
			if !ok {
				child = newANode()
				n.children[ch] = child
			}
			n = child
		}
		callbacks := make([]Callback, len(regs))
		for i, reg := range regs {
			callbacks[i] = reg.callback
		}
		n.outputs = append(n.outputs, output{keyword: kw, callbacks: callbacks})
	}

	// Phase 2: breadth-first assignment of failure links. First-level
	// children fail to root.
	root.fail = root
	queue := make([]*anode, 0, len(root.children))
	for _, child := range root.children {
		child.fail = root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for ch, child := range n.children {
			queue = append(queue, child)

			f := n.fail
			for f != root {
				if _, ok := f.children[ch]; ok {
					break
				}
				f = f.fail
			}
			if next, ok := f.children[ch]; ok {
				child.fail = next
			} else {
				child.fail = root
			}
			child.outputs = append(child.outputs, child.fail.outputs...)
		}
	}

	return root, maxLen
}

// step advances the automaton from node n on character ch: walk the fail
// chain until a node with a ch-child is found, or the root is reached,
// then take that child (or remain at root).
func step(root, n *anode, ch rune) *anode {
	for {
		if child, ok := n.children[ch]; ok {
			return child
		}
		if n == root {
			return root
		}
		n = n.fail
	}
}
