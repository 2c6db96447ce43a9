package dsprep

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceBounds(t *testing.T) {
	keys := []FrameKey{{"a", 1}, {"a", 2}, {"a", 3}, {"a", 7}, {"b", 8}, {"b", 10}}
	before, after := sequenceBounds(keys, consecutiveFrames)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 0}, before)
	assert.Equal(t, []int{2, 1, 0, 1, 0, 0}, after)

	before, after = sequenceBounds(keys, sameSequence)
	assert.Equal(t, []int{0, 1, 2, 3, 0, 1}, before)
	assert.Equal(t, []int{3, 2, 1, 0, 1, 0}, after)

	before, after = sequenceBounds(nil, consecutiveFrames)
	assert.Empty(t, before)
	assert.Empty(t, after)
}

func TestIndexWithIdentity(t *testing.T) {
	s := IndexStrategy{
		FrameKey: numericStem,
		Identity: withoutTop,
	}
	canonical, err := s.index("color", []string{"rgb/s/0.png", "rgb/s/1.png", "rgb/s/1.png"}, nil, nil)
	require.NoError(t, err)
	// Duplicate identities keep their own global id but the first one is used for matching.
	assert.Equal(t, map[string]int{"s/0.png": 0, "s/1.png": 1}, canonical.ids)
	assert.Equal(t, []Position{{0, 0, 1, 0}, {1, 1, 0, 1}, {2, 0, 0, 2}}, canonical.positions)

	depth, err := s.index("depth", []string{"d/s/1.png"}, canonical.ids, nil)
	require.NoError(t, err)
	assert.Equal(t, []Position{{1, 0, 0, 0}}, depth.positions)

	_, err = s.index("depth", []string{"d/s/5.png"}, canonical.ids, nil)
	assert.True(t, errors.Is(err, ErrConsistency))

	s.Unmatched = func(string) UnmatchedPolicy { return UnmatchedSkip }
	depth, err = s.index("depth", []string{"d/s/0.png", "d/s/5.png"}, canonical.ids, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"d/s/0.png"}, depth.rels)
}

func TestIndexStereo(t *testing.T) {
	s := IndexStrategy{Identity: withoutTop}
	canonical, err := s.index("color", []string{"img/left_1.png"}, nil, nil)
	require.NoError(t, err)

	stereo := func(string) string { return "img/left_1.png" }
	right, err := s.index("color_right", []string{"img/right_1.png"}, canonical.ids, stereo)
	require.NoError(t, err)
	assert.Equal(t, []string{"img/right_1.png"}, right.rels)
	assert.Equal(t, 0, right.positions[0].GlobalID)
}

func TestIndexMalformedFrame(t *testing.T) {
	s := IndexStrategy{FrameKey: numericStem}
	_, err := s.index("color", []string{"rgb/frame.png"}, nil, nil)
	assert.True(t, errors.Is(err, ErrMalformedName))
}

func TestCityscapesAdjacent(t *testing.T) {
	adjacent := cityscapesAdjacent([]string{"frankfurt_000000_006434"})
	assert.True(t, adjacent(FrameKey{"frankfurt_000000", 6432}, FrameKey{"frankfurt_000000", 6433}))
	// A removed frame leaves a gap of two or three.
	assert.True(t, adjacent(FrameKey{"frankfurt_000000", 6433}, FrameKey{"frankfurt_000000", 6435}))
	assert.True(t, adjacent(FrameKey{"frankfurt_000000", 6432}, FrameKey{"frankfurt_000000", 6435}))
	assert.False(t, adjacent(FrameKey{"frankfurt_000000", 6431}, FrameKey{"frankfurt_000000", 6435}))
	assert.False(t, adjacent(FrameKey{"frankfurt_000000", 10}, FrameKey{"frankfurt_000000", 12}))
}

func TestFileNameParts(t *testing.T) {
	key, err := cityscapesFrameKey("color", "leftImg8bit/train/aachen/aachen_000012_000019_leftImg8bit.png")
	require.NoError(t, err)
	assert.Equal(t, FrameKey{Sequence: "aachen_000012", Frame: 19}, key)

	id, err := cityscapesIdentity("segmentation", "gtFine/train/aachen/aachen_000012_000019_gtFine_labelIds.png")
	require.NoError(t, err)
	assert.Equal(t, "train/aachen/aachen_000012_000019", id)

	_, err = cityscapesFrameKey("color", "leftImg8bit/aachen.png")
	assert.True(t, errors.Is(err, ErrMalformedName))

	dir, base, ext, err := splitPath("a/b/c.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b", "c", "png"}, []string{dir, base, ext})
	_, _, _, err = splitPath("a/b/c")
	assert.True(t, errors.Is(err, ErrMalformedName))

	assert.Equal(t, "a_b", trimParts("a_b_c_d", 2))
	assert.Equal(t, "", trimParts("a", 3))
}
