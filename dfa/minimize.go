package dfa

// Minimize returns an equivalent DFA with the fewest possible states,
// using Hopcroft's partition-refinement algorithm.
//
// Grounded on the retrieved SnellerInc-sneller regexp2 package's
// autom.DfaMin.go (getReverseEdges + hopcroft: build a reverse-edge index,
// seed the partition with {accepting, non-accepting}, then repeatedly
// split blocks against a worklist of "distinguishing" blocks until no
// block can be split further). That implementation partitions over
// compressed symbol ranges; this one partitions directly over the 256-byte
// alphabet, since the table here is already a dense byte-indexed array
// rather than a range-compressed automaton.
//
// Minimize is idempotent: run against an already-minimal DFA, no two states
// are equivalent, so refinement ends with one singleton block per state and
// the returned table is isomorphic to the input.
func (d *DFA) Minimize() *DFA {
	n := d.NumStates()

	reverse := make([][256][]StateID, n)
	for q := StateID(0); int(q) < n; q++ {
		row := d.trans[q]
		for c := 0; c < 256; c++ {
			t := row[c]
			reverse[t][c] = append(reverse[t][c], q)
		}
	}

	partition := newPartition(n, d.accept)
	worklist := partition.blocks()

	for len(worklist) > 0 {
		a := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for c := 0; c < 256; c++ {
			x := make(map[StateID]bool)
			for q := range a.members {
				for _, src := range reverse[q][c] {
					x[src] = true
				}
			}
			if len(x) == 0 {
				continue
			}

			for _, y := range partition.blocks() {
				inX, notInX := splitBlock(y, x)
				if len(inX) == 0 || len(notInX) == 0 {
					continue
				}
				b1, b2 := partition.replace(y, inX, notInX)
				if partition.inWorklist(y, worklist) {
					worklist = replaceInWorklist(worklist, y, inX, notInX)
				} else if len(inX) <= len(notInX) {
					worklist = append(worklist, b1)
				} else {
					worklist = append(worklist, b2)
				}
			}
		}
	}

	return partition.buildDFA(d)
}

// block is a set of original StateIDs believed equivalent.
type block struct {
	members map[StateID]bool
}

func newBlock() *block { return &block{members: make(map[StateID]bool)} }

type partitionState struct {
	blocksByID map[*block]struct{}
	blockOf    []*block // original StateID -> owning block
}

func newPartition(n int, accept []bool) *partitionState {
	acc, rej := newBlock(), newBlock()
	for q := 0; q < n; q++ {
		if accept[q] {
			acc.members[StateID(q)] = true
		} else {
			rej.members[StateID(q)] = true
		}
	}
	p := &partitionState{
		blocksByID: make(map[*block]struct{}),
		blockOf:    make([]*block, n),
	}
	for _, b := range []*block{acc, rej} {
		if len(b.members) == 0 {
			continue
		}
		p.blocksByID[b] = struct{}{}
		for q := range b.members {
			p.blockOf[q] = b
		}
	}
	return p
}

func (p *partitionState) blocks() []*block {
	out := make([]*block, 0, len(p.blocksByID))
	for b := range p.blocksByID {
		out = append(out, b)
	}
	return out
}

func (p *partitionState) inWorklist(y *block, worklist []*block) bool {
	for _, w := range worklist {
		if w == y {
			return true
		}
	}
	return false
}

func splitBlock(y *block, x map[StateID]bool) (inX, notInX map[StateID]bool) {
	inX = make(map[StateID]bool)
	notInX = make(map[StateID]bool)
	for q := range y.members {
		if x[q] {
			inX[q] = true
		} else {
			notInX[q] = true
		}
	}
	return inX, notInX
}

func (p *partitionState) replace(y *block, inX, notInX map[StateID]bool) (b1, b2 *block) {
	delete(p.blocksByID, y)
	b1, b2 = newBlock(), newBlock()
	b1.members, b2.members = inX, notInX
	p.blocksByID[b1] = struct{}{}
	p.blocksByID[b2] = struct{}{}
	for q := range inX {
		p.blockOf[q] = b1
	}
	for q := range notInX {
		p.blockOf[q] = b2
	}
	return b1, b2
}

func replaceInWorklist(worklist []*block, y *block, inX, notInX map[StateID]bool) []*block {
	out := make([]*block, 0, len(worklist)+1)
	for _, w := range worklist {
		if w == y {
			b1, b2 := newBlock(), newBlock()
			b1.members, b2.members = inX, notInX
			out = append(out, b1, b2)
			continue
		}
		out = append(out, w)
	}
	return out
}

// buildDFA renders the final partition into a fresh, renumbered DFA.
// RejectState's block always maps to id 0; the remaining blocks are
// numbered in map iteration order, so ids other than 0 (and hence the
// exact table layout) can differ between calls on the same input.
func (p *partitionState) buildDFA(orig *DFA) *DFA {
	blocks := p.blocks()

	rejectBlock := p.blockOf[RejectState]
	blockID := make(map[*block]StateID, len(blocks))
	blockID[rejectBlock] = 0
	next := StateID(1)
	for _, b := range blocks {
		if b == rejectBlock {
			continue
		}
		blockID[b] = next
		next++
	}

	out := &DFA{
		trans:  make([][256]StateID, len(blocks)),
		accept: make([]bool, len(blocks)),
		start:  blockID[p.blockOf[orig.start]],
	}
	for _, b := range blocks {
		id := blockID[b]
		var rep StateID
		for q := range b.members {
			rep = q
			break
		}
		out.accept[id] = orig.accept[rep]
		row := orig.trans[rep]
		for c := 0; c < 256; c++ {
			out.trans[id][c] = blockID[p.blockOf[row[c]]]
		}
	}
	return out
}
