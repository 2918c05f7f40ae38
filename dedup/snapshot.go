// Copyright 2025 The Cooking Voice Assistant Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package dedup

import (
	"fmt"
	"math"
	"sort"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/Riya0071234/Cooking-Voice-Assistant/core"
)

// snapshotVersion guards against decoding snapshots written by an
// incompatible format. Bump when the layout changes.
const snapshotVersion = 1

// Snapshot serializes the index entries to bytes. Families, entries and
// terms are written in sorted order so equal indexes produce equal bytes.
// Posting lists are not persisted; Restore rebuilds them.
func (i *Index) Snapshot() []byte {
	i.mu.Lock()
	defer i.mu.Unlock()

	size := varint.PositiveInt.Size(snapshotVersion)
	size += varint.PositiveInt.Size(len(i.families))
	for sourceType, fam := range i.families {
		size += varint.PositiveInt.Size(int(sourceType))
		size += varint.PositiveInt.Size(len(fam.entries))
		for id, vec := range fam.entries {
			size += varint.Uint64.Size(uint64(id))
			size += varint.PositiveInt.Size(len(vec.weights))
			for term, weight := range vec.weights {
				size += ord.String.Size(term) + raw.Float64.Size(weight)
			}
		}
	}

	bs := make([]byte, size)
	n := varint.PositiveInt.Marshal(snapshotVersion, bs)
	n += varint.PositiveInt.Marshal(len(i.families), bs[n:])

	sourceTypes := make([]core.SourceType, 0, len(i.families))
	for sourceType := range i.families {
		sourceTypes = append(sourceTypes, sourceType)
	}
	sort.Slice(sourceTypes, func(a, b int) bool { return sourceTypes[a] < sourceTypes[b] })

	for _, sourceType := range sourceTypes {
		fam := i.families[sourceType]
		n += varint.PositiveInt.Marshal(int(sourceType), bs[n:])
		n += varint.PositiveInt.Marshal(len(fam.entries), bs[n:])

		ids := make([]core.ID, 0, len(fam.entries))
		for id := range fam.entries {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

		for _, id := range ids {
			vec := fam.entries[id]
			n += varint.Uint64.Marshal(uint64(id), bs[n:])
			n += varint.PositiveInt.Marshal(len(vec.weights), bs[n:])

			terms := make([]string, 0, len(vec.weights))
			for term := range vec.weights {
				terms = append(terms, term)
			}
			sort.Strings(terms)
			for _, term := range terms {
				n += ord.String.Marshal(term, bs[n:])
				n += raw.Float64.Marshal(vec.weights[term], bs[n:])
			}
		}
	}
	return bs
}

// Restore replaces the index contents with a previously taken snapshot.
// Any decoding failure, including trailing garbage, returns
// ErrIndexCorrupted and leaves the index unchanged.
func (i *Index) Restore(bs []byte) error {
	version, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexCorrupted, err)
	}
	if version != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrIndexCorrupted, version)
	}

	familyCount, m, err := varint.PositiveInt.Unmarshal(bs[n:])
	n += m
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexCorrupted, err)
	}

	families := make(map[core.SourceType]*family, familyCount)
	for f := 0; f < familyCount; f++ {
		var sourceTypeRaw int
		sourceTypeRaw, m, err = varint.PositiveInt.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIndexCorrupted, err)
		}

		var entryCount int
		entryCount, m, err = varint.PositiveInt.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIndexCorrupted, err)
		}

		fam := newFamily()
		for e := 0; e < entryCount; e++ {
			var idRaw uint64
			idRaw, m, err = varint.Uint64.Unmarshal(bs[n:])
			n += m
			if err != nil {
				return fmt.Errorf("%w: %v", ErrIndexCorrupted, err)
			}

			var termCount int
			termCount, m, err = varint.PositiveInt.Unmarshal(bs[n:])
			n += m
			if err != nil {
				return fmt.Errorf("%w: %v", ErrIndexCorrupted, err)
			}

			weights := make(map[string]float64, termCount)
			var sumSquares float64
			for t := 0; t < termCount; t++ {
				var term string
				term, m, err = ord.String.Unmarshal(bs[n:])
				n += m
				if err != nil {
					return fmt.Errorf("%w: %v", ErrIndexCorrupted, err)
				}
				var weight float64
				weight, m, err = raw.Float64.Unmarshal(bs[n:])
				n += m
				if err != nil {
					return fmt.Errorf("%w: %v", ErrIndexCorrupted, err)
				}
				weights[term] = weight
				sumSquares += weight * weight
			}
			fam.insert(core.ID(idRaw), vector{weights: weights, norm: math.Sqrt(sumSquares)})
		}
		families[core.SourceType(sourceTypeRaw)] = fam
	}

	if n != len(bs) {
		return fmt.Errorf("%w: %d trailing bytes", ErrIndexCorrupted, len(bs)-n)
	}

	i.mu.Lock()
	i.families = families
	i.mu.Unlock()
	return nil
}
