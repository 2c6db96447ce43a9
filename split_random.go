package dsprep

import (
	"math/rand"
	"path"
	"sort"

	"github.com/pkg/errors"
)

// The order in which random splits are filled.
var randomFillOrder = []SplitName{SplitTrain, SplitTest, SplitValidation}

// RandomFolders maps the folders of the dataset randomly to the splits. Sizes holds the fractions
// of the train, validation and test subsets. The same seed always yields the same mapping.
type RandomFolders struct {
	Sizes [3]float64
	Seed  int64
}

func (r RandomFolders) CreateSplits(b *SplitBuilder) (map[SplitName]*Manifest, error) {
	basic := b.basic
	if len(basic.Categories) == 0 {
		return nil, errors.Wrap(ErrConsistency, "the manifest has no categories")
	}
	canonical := basic.Categories[0].Folders
	n := len(canonical)

	sizes := map[SplitName]int{
		SplitTest:       int(float64(n) * r.Sizes[2]),
		SplitValidation: int(float64(n) * r.Sizes[1]),
	}
	sizes[SplitTrain] = n - sizes[SplitTest] - sizes[SplitValidation]

	folders := make(map[SplitName]map[string][]string, len(randomFillOrder))
	for _, split := range randomFillOrder {
		folders[split] = make(map[string][]string, len(basic.Categories))
	}

	rng := rand.New(rand.NewSource(r.Seed))
	pool := allIndices(n)
	splitIndex, assigned := 0, 0
	for len(pool) > 0 {
		for assigned >= sizes[randomFillOrder[splitIndex]] {
			splitIndex++
			assigned = 0
			if splitIndex == len(randomFillOrder) {
				return nil, errors.Wrapf(ErrConsistency, "split sizes %v do not cover %d folders", r.Sizes, n)
			}
		}
		split := randomFillOrder[splitIndex]

		k := rng.Intn(len(pool))
		g := pool[k]
		pool = append(pool[:k], pool[k+1:]...)
		assigned++

		for i := range basic.Categories {
			c := &basic.Categories[i]
			if g >= len(c.Folders) {
				return nil, errors.Wrapf(ErrConsistency, "category %q has %d folders, expected %d",
					c.Name, len(c.Folders), n)
			}
			folders[split][c.Name] = append(folders[split][c.Name], c.Folders[g])
		}
	}

	if err := checkDisjoint(basic.Names(), folders); err != nil {
		return nil, err
	}
	b.splitFolders = folders

	splits := make(map[SplitName]*Manifest, len(randomFillOrder))
	for _, split := range randomFillOrder {
		m := newSplitManifest(len(basic.Categories))
		for i := range basic.Categories {
			c := &basic.Categories[i]
			assigned := append([]string(nil), folders[split][c.Name]...)
			sort.Strings(assigned)

			// Entries are grouped by folder in the order of the sorted folders.
			byDir := make(map[string][]int)
			for j, p := range c.Paths() {
				d := path.Dir(p)
				byDir[d] = append(byDir[d], j)
			}
			var idx []int
			for _, d := range assigned {
				idx = append(idx, byDir[d]...)
			}
			m.Categories = append(m.Categories, subset(c, idx, assigned))
		}
		splits[split] = m
	}
	return splits, nil
}

// checkDisjoint fails if a folder has been assigned to more than one split.
func checkDisjoint(names []string, folders map[SplitName]map[string][]string) error {
	for _, name := range names {
		owner := make(map[string]SplitName)
		for _, split := range randomFillOrder {
			for _, f := range folders[split][name] {
				if prev, ok := owner[f]; ok && prev != split {
					return errors.Wrapf(ErrConsistency, "folder %q of category %q has been assigned to %s and %s",
						f, name, prev, split)
				}
				owner[f] = split
			}
		}
	}
	return nil
}
