package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseGroups reads "size:count,..." into a flat list of group sizes.
// A bare "size" counts once.
func parseGroups(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		size, count := part, "1"
		if i := strings.IndexByte(part, ':'); i >= 0 {
			size, count = part[:i], part[i+1:]
		}
		k, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil {
			return nil, fmt.Errorf("group size %q: %w", size, err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("group count %q: not a non-negative integer", count)
		}
		for range n {
			out = append(out, k)
		}
	}
	return out, nil
}

// parseWeights reads "size:weight,..." into relative weights.
func parseWeights(s string) (map[int]float64, error) {
	out := make(map[int]float64)
	for _, part := range splitList(s) {
		i := strings.IndexByte(part, ':')
		if i < 0 {
			return nil, fmt.Errorf("weight %q: want size:weight", part)
		}
		k, err := strconv.Atoi(strings.TrimSpace(part[:i]))
		if err != nil {
			return nil, fmt.Errorf("weight size %q: %w", part[:i], err)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(part[i+1:]), 64)
		if err != nil {
			return nil, fmt.Errorf("weight value %q: %w", part[i+1:], err)
		}
		out[k] += w
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
