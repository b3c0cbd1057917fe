package graph

import (
	"sort"
	"strings"
)

const (
	minNgramLen = 2
	maxNgramLen = 4
)

// searchIndex is an inverted n-gram index supporting substring search
// without a full scan of every node name, grounded on the same
// intersect-then-confirm strategy as the teacher's n-gram
// substring-matching packages.
type searchIndex struct {
	exact map[string][]NodeHandle
	ngram map[string]map[NodeHandle]struct{}
}

func newSearchIndex() *searchIndex {
	return &searchIndex{
		exact: make(map[string][]NodeHandle),
		ngram: make(map[string]map[NodeHandle]struct{}),
	}
}

func (s *searchIndex) insert(name string, h NodeHandle) {
	lower := strings.ToLower(name)
	s.exact[lower] = append(s.exact[lower], h)
	for _, ng := range generateNgrams(lower) {
		set, ok := s.ngram[ng]
		if !ok {
			set = make(map[NodeHandle]struct{})
			s.ngram[ng] = set
		}
		set[h] = struct{}{}
	}
}

func (s *searchIndex) remove(name string, h NodeHandle) {
	lower := strings.ToLower(name)
	if ids, ok := s.exact[lower]; ok {
		filtered := ids[:0]
		for _, id := range ids {
			if id != h {
				filtered = append(filtered, id)
			}
		}
		if len(filtered) == 0 {
			delete(s.exact, lower)
		} else {
			s.exact[lower] = filtered
		}
	}
	for _, ng := range generateNgrams(lower) {
		if set, ok := s.ngram[ng]; ok {
			delete(set, h)
			if len(set) == 0 {
				delete(s.ngram, ng)
			}
		}
	}
}

// search returns matching handles, deterministically ordered.
func (s *searchIndex) search(query string) []NodeHandle {
	lower := strings.ToLower(query)

	if len(lower) < minNgramLen {
		var results []NodeHandle
		for name, ids := range s.exact {
			if strings.HasPrefix(name, lower) {
				results = append(results, ids...)
			}
		}
		sortHandles(results)
		return dedupHandles(results)
	}

	ngrams := generateNgrams(lower)
	if len(ngrams) == 0 {
		return nil
	}

	var candidates map[NodeHandle]struct{}
	for _, ng := range ngrams {
		ids, ok := s.ngram[ng]
		if !ok {
			return nil
		}
		if candidates == nil {
			candidates = make(map[NodeHandle]struct{}, len(ids))
			for id := range ids {
				candidates[id] = struct{}{}
			}
			continue
		}
		for id := range candidates {
			if _, present := ids[id]; !present {
				delete(candidates, id)
			}
		}
	}

	var results []NodeHandle
	for id := range candidates {
		if s.confirmSubstring(id, lower) {
			results = append(results, id)
		}
	}
	sortHandles(results)
	return results
}

func (s *searchIndex) confirmSubstring(h NodeHandle, lower string) bool {
	for name, ids := range s.exact {
		if !strings.Contains(name, lower) {
			continue
		}
		for _, id := range ids {
			if id == h {
				return true
			}
		}
	}
	return false
}

func generateNgrams(s string) []string {
	runes := []rune(s)
	var out []string
	for n := minNgramLen; n <= maxNgramLen; n++ {
		if len(runes) < n {
			continue
		}
		for i := 0; i <= len(runes)-n; i++ {
			out = append(out, string(runes[i:i+n]))
		}
	}
	return out
}

func sortHandles(h []NodeHandle) {
	sort.Slice(h, func(i, j int) bool { return h[i] < h[j] })
}

func dedupHandles(h []NodeHandle) []NodeHandle {
	if len(h) == 0 {
		return h
	}
	out := h[:1]
	for _, v := range h[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
