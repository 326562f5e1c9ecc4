package keyseq

import "github.com/google/btree"

// Trie stores values under key sequences. The children of every node
// are kept in a btree ordered by Key.Compare.
type Trie struct {
	root Node
	size int
}

// Node is one key in a Trie
type Node struct {
	label    Key
	children *btree.BTreeG[*Node]
	value    any
	hasValue bool
}

func nodeLess(a, b *Node) bool {
	return a.label.Compare(b.label) < 0
}

func NewTrie() *Trie {
	return &Trie{}
}

func (t *Trie) Root() *Node {
	return &t.root
}

// Len returns the number of sequences that hold a value
func (t *Trie) Len() int {
	return t.size
}

// Put stores v under the sequence k, replacing any previous value
func (t *Trie) Put(k KeyList, v any) *Node {
	n := t.Root()
	for _, c := range k {
		n = n.Dig(c)
	}
	if !n.hasValue {
		t.size++
	}
	n.value = v
	n.hasValue = true
	return n
}

// GetList returns the node reached by following every key in k
func (t *Trie) GetList(k KeyList) *Node {
	n := t.Root()
	for _, c := range k {
		if n = n.Get(c); n == nil {
			return nil
		}
	}
	return n
}

// Get returns the child of this node labeled k
func (n *Node) Get(k Key) *Node {
	if n.children == nil {
		return nil
	}
	child, ok := n.children.Get(&Node{label: k})
	if !ok {
		return nil
	}
	return child
}

// Dig returns the child labeled k, creating it if necessary
func (n *Node) Dig(k Key) *Node {
	if child := n.Get(k); child != nil {
		return child
	}
	if n.children == nil {
		n.children = btree.NewG(4, nodeLess)
	}
	child := &Node{label: k}
	n.children.ReplaceOrInsert(child)
	return child
}

func (n *Node) HasChildren() bool {
	return n.children != nil && n.children.Len() > 0
}

// Each calls proc for every child in key order, stopping early if proc
// returns false
func (n *Node) Each(proc func(*Node) bool) {
	if n.children == nil {
		return
	}
	n.children.Ascend(proc)
}

func (n *Node) Label() Key {
	return n.label
}

func (n *Node) HasValue() bool {
	return n.hasValue
}

func (n *Node) Value() any {
	return n.value
}
