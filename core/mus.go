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


package core

import (
	"sort"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the domain types persisted by the storage sink and the
// similarity index snapshot. Written by hand over the mus-go primitives;
// field order is part of the on-disk format and must not change.
var (
	IDMUS          = idMUS{}
	ContentItemMUS = contentItemMUS{}
	VideoFrameMUS  = videoFrameMUS{}
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// stringSlice serializes a length-prefixed slice of strings.
type stringSliceMUS struct{}

var StringSliceMUS = stringSliceMUS{}

func (stringSliceMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func (stringSliceMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]string, length)
	for i := 0; i < length; i++ {
		var m int
		v[i], m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (stringSliceMUS) Size(v []string) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

// stringMap serializes a string map with keys in sorted order so that equal
// maps always produce identical bytes.
type stringMapMUS struct{}

var StringMapMUS = stringMapMUS{}

func (stringMapMUS) Marshal(v map[string]string, bs []byte) (n int) {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	n = varint.PositiveInt.Marshal(len(keys), bs)
	for _, k := range keys {
		n += ord.String.Marshal(k, bs[n:])
		n += ord.String.Marshal(v[k], bs[n:])
	}
	return n
}

func (stringMapMUS) Unmarshal(bs []byte) (v map[string]string, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make(map[string]string, length)
	for i := 0; i < length; i++ {
		var k, val string
		var m int
		k, m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		val, m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
		v[k] = val
	}
	return v, n, nil
}

func (stringMapMUS) Size(v map[string]string) (size int) {
	size = varint.PositiveInt.Size(len(v))
	for k, val := range v {
		size += ord.String.Size(k) + ord.String.Size(val)
	}
	return size
}

type detectionMUS struct{}

var DetectionMUS = detectionMUS{}

func (detectionMUS) Marshal(d Detection, bs []byte) (n int) {
	n = ord.String.Marshal(d.Label, bs)
	n += raw.Float64.Marshal(d.Confidence, bs[n:])
	return n
}

func (detectionMUS) Unmarshal(bs []byte) (d Detection, n int, err error) {
	d.Label, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return d, n, err
	}
	var m int
	d.Confidence, m, err = raw.Float64.Unmarshal(bs[n:])
	n += m
	return d, n, err
}

func (detectionMUS) Size(d Detection) int {
	return ord.String.Size(d.Label) + raw.Float64.Size(d.Confidence)
}

type videoFrameMUS struct{}

func (videoFrameMUS) Marshal(f VideoFrame, bs []byte) (n int) {
	n = ord.String.Marshal(f.VideoID, bs)
	n += varint.PositiveInt.Marshal(f.FrameIndex, bs[n:])
	n += varint.Int64.Marshal(int64(f.Timestamp), bs[n:])
	n += varint.PositiveInt.Marshal(len(f.Detections), bs[n:])
	for _, d := range f.Detections {
		n += DetectionMUS.Marshal(d, bs[n:])
	}
	return n
}

func (videoFrameMUS) Unmarshal(bs []byte) (f VideoFrame, n int, err error) {
	f.VideoID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return f, n, err
	}
	var m int
	f.FrameIndex, m, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += m
	if err != nil {
		return f, n, err
	}
	var ts int64
	ts, m, err = varint.Int64.Unmarshal(bs[n:])
	n += m
	if err != nil {
		return f, n, err
	}
	f.Timestamp = time.Duration(ts)
	var count int
	count, m, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += m
	if err != nil {
		return f, n, err
	}
	if count > 0 {
		f.Detections = make([]Detection, count)
		for i := 0; i < count; i++ {
			f.Detections[i], m, err = DetectionMUS.Unmarshal(bs[n:])
			n += m
			if err != nil {
				return f, n, err
			}
		}
	}
	return f, n, nil
}

func (videoFrameMUS) Size(f VideoFrame) (size int) {
	size = ord.String.Size(f.VideoID)
	size += varint.PositiveInt.Size(f.FrameIndex)
	size += varint.Int64.Size(int64(f.Timestamp))
	size += varint.PositiveInt.Size(len(f.Detections))
	for _, d := range f.Detections {
		size += DetectionMUS.Size(d)
	}
	return size
}

type contentItemMUS struct{}

func (contentItemMUS) Marshal(c ContentItem, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(c.Id), bs)
	n += varint.PositiveInt.Marshal(int(c.Source), bs[n:])
	n += ord.String.Marshal(c.SourceID, bs[n:])
	n += ord.String.Marshal(c.RawText, bs[n:])
	n += ord.String.Marshal(c.Language, bs[n:])
	n += StringSliceMUS.Marshal(c.Tags, bs[n:])
	n += StringMapMUS.Marshal(c.Metadata, bs[n:])
	n += varint.PositiveInt.Marshal(int(c.Status), bs[n:])
	n += varint.PositiveInt.Marshal(int(c.Reason), bs[n:])
	n += varint.Uint64.Marshal(uint64(c.DuplicateOf), bs[n:])
	n += varint.Int64.Marshal(c.IngestedAt.UnixMicro(), bs[n:])

	n += ord.Bool.Marshal(c.Recipe != nil, bs[n:])
	if c.Recipe != nil {
		n += ord.String.Marshal(c.Recipe.Title, bs[n:])
		n += StringSliceMUS.Marshal(c.Recipe.Ingredients, bs[n:])
		n += StringSliceMUS.Marshal(c.Recipe.Instructions, bs[n:])
	}
	n += ord.Bool.Marshal(c.Contextual != nil, bs[n:])
	if c.Contextual != nil {
		n += ord.String.Marshal(c.Contextual.Question, bs[n:])
		n += ord.String.Marshal(c.Contextual.Answer, bs[n:])
	}
	n += ord.Bool.Marshal(c.Video != nil, bs[n:])
	if c.Video != nil {
		n += ord.String.Marshal(c.Video.VideoID, bs[n:])
		n += ord.String.Marshal(c.Video.Title, bs[n:])
		n += raw.Float64.Marshal(c.Video.DurationSeconds, bs[n:])
		n += ord.String.Marshal(c.Video.MediaRef, bs[n:])
	}
	return n
}

func (contentItemMUS) Unmarshal(bs []byte) (c ContentItem, n int, err error) {
	var m int
	var u uint64
	u, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return c, n, err
	}
	c.Id = ID(u)

	var i int
	if i, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	} else {
		n += m
		c.Source = SourceType(i)
	}
	if c.SourceID, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.RawText, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Language, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Tags, m, err = StringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if c.Metadata, m, err = StringMapMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if i, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	} else {
		n += m
		c.Status = Status(i)
	}
	if i, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	} else {
		n += m
		c.Reason = RejectReason(i)
	}
	if u, m, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	} else {
		n += m
		c.DuplicateOf = ID(u)
	}
	var micros int64
	if micros, m, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	c.IngestedAt = time.UnixMicro(micros).UTC()

	var present bool
	if present, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if present {
		entry := &RecipeEntry{}
		if entry.Title, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		if entry.Ingredients, m, err = StringSliceMUS.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		if entry.Instructions, m, err = StringSliceMUS.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		c.Recipe = entry
	}
	if present, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if present {
		entry := &ContextualEntry{}
		if entry.Question, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		if entry.Answer, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		c.Contextual = entry
	}
	if present, m, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return c, n + m, err
	}
	n += m
	if present {
		entry := &VideoDetails{}
		if entry.VideoID, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		if entry.Title, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		if entry.DurationSeconds, m, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		if entry.MediaRef, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return c, n + m, err
		}
		n += m
		c.Video = entry
	}
	return c, n, nil
}

func (contentItemMUS) Size(c ContentItem) (size int) {
	size = varint.Uint64.Size(uint64(c.Id))
	size += varint.PositiveInt.Size(int(c.Source))
	size += ord.String.Size(c.SourceID)
	size += ord.String.Size(c.RawText)
	size += ord.String.Size(c.Language)
	size += StringSliceMUS.Size(c.Tags)
	size += StringMapMUS.Size(c.Metadata)
	size += varint.PositiveInt.Size(int(c.Status))
	size += varint.PositiveInt.Size(int(c.Reason))
	size += varint.Uint64.Size(uint64(c.DuplicateOf))
	size += varint.Int64.Size(c.IngestedAt.UnixMicro())

	size += ord.Bool.Size(c.Recipe != nil)
	if c.Recipe != nil {
		size += ord.String.Size(c.Recipe.Title)
		size += StringSliceMUS.Size(c.Recipe.Ingredients)
		size += StringSliceMUS.Size(c.Recipe.Instructions)
	}
	size += ord.Bool.Size(c.Contextual != nil)
	if c.Contextual != nil {
		size += ord.String.Size(c.Contextual.Question)
		size += ord.String.Size(c.Contextual.Answer)
	}
	size += ord.Bool.Size(c.Video != nil)
	if c.Video != nil {
		size += ord.String.Size(c.Video.VideoID)
		size += ord.String.Size(c.Video.Title)
		size += raw.Float64.Size(c.Video.DurationSeconds)
		size += ord.String.Size(c.Video.MediaRef)
	}
	return size
}
