package overlay

// NodeSet stores the texts of a Tree's nodes behind generation-checked
// handles, so a handle to a released node resolves as stale even after its
// slot is reused.
type NodeSet struct {
	nodes []textNode
	free  []uint32
	live  int
}

type textNode struct {
	text string
	gen  uint32
	live bool
}

// Handles pack the slot index plus one in the low 32 bits and the
// generation in the high 32 bits.
func makeHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index+1))
}

func (s *NodeSet) resolve(h Handle) (*textNode, bool) {
	low := uint32(h)
	if low == 0 || int(low) > len(s.nodes) {
		return nil, false
	}
	n := &s.nodes[low-1]
	if !n.live || n.gen != uint32(h>>32) {
		return nil, false
	}
	return n, true
}

// Add creates a node and returns its handle.
func (s *NodeSet) Add(text string) Handle {
	s.live++
	if k := len(s.free); k > 0 {
		index := s.free[k-1]
		s.free = s.free[:k-1]
		n := &s.nodes[index]
		n.gen++
		n.text = text
		n.live = true
		return makeHandle(index, n.gen)
	}
	s.nodes = append(s.nodes, textNode{text: text, live: true})
	return makeHandle(uint32(len(s.nodes)-1), 0)
}

// SetText replaces a node's text.
func (s *NodeSet) SetText(h Handle, text string) error {
	n, ok := s.resolve(h)
	if !ok {
		return ErrStaleHandle
	}
	n.text = text
	return nil
}

// Text returns a node's text.
func (s *NodeSet) Text(h Handle) (string, bool) {
	n, ok := s.resolve(h)
	if !ok {
		return "", false
	}
	return n.text, true
}

// Release tears a node down. Releasing a stale handle is a no-op.
func (s *NodeSet) Release(h Handle) {
	n, ok := s.resolve(h)
	if !ok {
		return
	}
	n.live = false
	n.text = ""
	s.free = append(s.free, uint32(h)-1)
	s.live--
}

// Len returns the number of live nodes.
func (s *NodeSet) Len() int {
	return s.live
}
