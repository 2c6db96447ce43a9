package dsprep

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// FrameKey locates a file within a recording: the sequence it belongs to and its frame number.
type FrameKey struct {
	Sequence string
	Frame    int
}

// consecutiveFrames is the default sequence rule: frame numbers increase by one.
func consecutiveFrames(prev, cur FrameKey) bool {
	return prev.Frame == cur.Frame-1
}

// sameSequence starts a new sequence whenever the sequence id changes.
func sameSequence(prev, cur FrameKey) bool {
	return prev.Sequence == cur.Sequence
}

// UnmatchedPolicy decides what happens to entries that have no counterpart in the canonical
// category.
type UnmatchedPolicy int

const (
	// UnmatchedFail aborts indexing with ErrConsistency.
	UnmatchedFail UnmatchedPolicy = iota
	// UnmatchedSkip drops the entry before sequences are detected.
	UnmatchedSkip
)

// IndexStrategy holds the dataset specific hooks of the position indexer. All paths passed to the
// hooks are relative to the dataset root and slash separated.
type IndexStrategy struct {
	// FrameKey parses the frame key of a file. If nil, every entry is a sequence of length one.
	FrameKey func(category, rel string) (FrameKey, error)
	// Adjacent reports whether cur continues the sequence of prev. Defaults to consecutiveFrames.
	Adjacent func(prev, cur FrameKey) bool
	// Identity derives the key that corresponding files of different categories share. If nil,
	// entries correspond by their position in the sorted lists.
	Identity func(category, rel string) (string, error)
	// Offset is added to the global and local id of positional categories.
	Offset func(category string) int
	// Unmatched returns the policy for unmatched entries of a category. Defaults to UnmatchedFail.
	Unmatched func(category string) UnmatchedPolicy
}

// sequenceBounds returns for every key the number of preceding and following frames of the
// maximal run of adjacent keys containing it.
func sequenceBounds(keys []FrameKey, adjacent func(prev, cur FrameKey) bool) (before, after []int) {
	n := len(keys)
	before = make([]int, n)
	after = make([]int, n)
	start := 0
	for j := 1; j <= n; j++ {
		if j < n && adjacent(keys[j-1], keys[j]) {
			continue
		}
		for k := start; k < j; k++ {
			before[k] = k - start
			after[k] = j - 1 - k
		}
		start = j
	}
	return before, after
}

// categoryIndex is the result of indexing one category.
type categoryIndex struct {
	rels      []string       // Kept entries.
	positions []Position     // Parallel to rels.
	ids       map[string]int // Identity to global id, only for the canonical category.
}

// index computes the positions of the sorted entries rels of a category. canonical is the identity
// map of the canonical category, or nil if this category is the canonical one. stereo maps a right
// camera path to its left counterpart before the identity is derived.
func (s *IndexStrategy) index(category string, rels []string, canonical map[string]int,
	stereo func(string) string) (*categoryIndex, error) {

	offset := 0
	if s.Offset != nil {
		offset = s.Offset(category)
	}
	policy := UnmatchedFail
	if s.Unmatched != nil {
		policy = s.Unmatched(category)
	}

	idx := &categoryIndex{}
	var globals []int
	if s.Identity == nil {
		idx.rels = rels
		globals = make([]int, len(rels))
		for j := range rels {
			globals[j] = j + offset
		}
	} else {
		if canonical == nil {
			idx.ids = make(map[string]int, len(rels))
		}
		for _, rel := range rels {
			key := rel
			if stereo != nil {
				key = stereo(key)
			}
			id, err := s.Identity(category, key)
			if err != nil {
				return nil, err
			}

			if canonical == nil {
				g := len(globals) + offset
				// The first occurrence of an identity wins.
				if _, ok := idx.ids[id]; !ok {
					idx.ids[id] = g
				}
				globals = append(globals, g)
				idx.rels = append(idx.rels, rel)
				continue
			}

			g, ok := canonical[id]
			if !ok {
				if policy == UnmatchedSkip {
					log.Debug().Str("category", category).Str("file", rel).Msg("Skipping unmatched file")
					continue
				}
				return nil, errors.Wrapf(ErrConsistency, "%s file %q has no canonical counterpart %q",
					category, rel, id)
			}
			globals = append(globals, g)
			idx.rels = append(idx.rels, rel)
		}
	}

	// Detect the sequences on the kept entries.
	var before, after []int
	if s.FrameKey == nil {
		before = make([]int, len(idx.rels))
		after = make([]int, len(idx.rels))
	} else {
		keys := make([]FrameKey, len(idx.rels))
		for j, rel := range idx.rels {
			k, err := s.FrameKey(category, rel)
			if err != nil {
				return nil, err
			}
			keys[j] = k
		}
		adjacent := s.Adjacent
		if adjacent == nil {
			adjacent = consecutiveFrames
		}
		before, after = sequenceBounds(keys, adjacent)
	}

	idx.positions = make([]Position, len(idx.rels))
	for j := range idx.rels {
		local := j
		if s.Identity == nil {
			local = j + offset
		}
		idx.positions[j] = Position{GlobalID: globals[j], Before: before[j], After: after[j], LocalID: local}
	}
	return idx, nil
}
