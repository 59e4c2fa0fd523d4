// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package graph answers transitive and direct dependency queries over the
// store's dependency edges.
package graph

import "github.com/kraklabs/ctx-agent/internal/store"

// Hit is one reached file in a blast radius result.
type Hit struct {
	FileID int64
	Path string
	Depth int
}

// RiskLevel classifies a blast radius result by size.
type RiskLevel string

const (
	RiskLow RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ClassifyRisk maps a blast radius count to a risk level.
func ClassifyRisk(count int) RiskLevel {
	switch {
	case count == 0:
		return RiskLow
	case count <= 5:
		return RiskMedium
	case count <= 20:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// BlastRadius breadth-first traverses the reverse-dependency relation
// starting at fileID, labeling each reached file with its BFS depth. The
// starting file itself is excluded. Results are ordered by ascending depth.
func BlastRadius(s *store.Store, fileID int64) ([]Hit, error) {
	visited := map[int64]bool{fileID: true}
	type queued struct {
		id int64
		depth int
	}
	queue := []queued{{fileID, 0}}
	var result []Hit

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		dependents, err := s.ListDependents(cur.id)
		if err != nil {
			return nil, err
		}
		for _, dep := range dependents {
			if visited[dep.ID] {
				continue
			}
			visited[dep.ID] = true
			depth := cur.depth + 1
			result = append(result, Hit{FileID: dep.ID, Path: dep.Path, Depth: depth})
			queue = append(queue, queued{dep.ID, depth})
		}
	}

	stableSortByDepth(result)
	return result, nil
}

// stableSortByDepth is an insertion sort: blast radii are small (bounded by
// the project's file count) and the ordering only needs to be stable by
// depth, ties arbitrary.
func stableSortByDepth(hits []Hit) {
	for i := 1; i < len(hits); i++ {
		j := i
		for j > 0 && hits[j-1].Depth > hits[j].Depth {
			hits[j-1], hits[j] = hits[j], hits[j-1]
			j--
		}
	}
}

// DirectDependents returns the one-hop reverse-dependency view.
func DirectDependents(s *store.Store, fileID int64) ([]store.File, error) {
	return s.ListDependents(fileID)
}

// DirectDependencies returns the one-hop forward-dependency view.
func DirectDependencies(s *store.Store, fileID int64) ([]store.Dependency, error) {
	return s.ListDependenciesOf(fileID)
}
