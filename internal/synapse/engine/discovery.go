package engine

import (
	"fmt"
	"sort"

	"github.com/cerebro-sinaptico/synapse-backend/internal/artifacts/domain"
)

// DefaultThreshold is the minimum score for a pair to count as a connection
// when the caller does not override it.
const DefaultThreshold = 70.0

// Candidate is an artifact whose similarity to the discovery target cleared
// the threshold.
type Candidate struct {
	Artifact domain.Artifact `json:"artifact"`
	Score    float64         `json:"score"`
}

// Diagnostic records a candidate that could not be scored. Discovery is
// advisory, so a bad candidate is reported and excluded instead of failing
// the whole scan.
type Diagnostic struct {
	TargetID    int64  `json:"target_id"`
	CandidateID int64  `json:"candidate_id"`
	Reason      string `json:"reason"`
}

// FindConnections scans candidates against the target and returns those with
// score >= threshold, ordered by descending score. Equal scores are broken by
// ascending candidate id so results are reproducible. Candidates that are the
// target itself or carry no id are skipped silently; candidates whose scoring
// fails are skipped with a Diagnostic.
func (e *Engine) FindConnections(target domain.Artifact, candidates []domain.Artifact, threshold float64) ([]Candidate, []Diagnostic) {
	if len(candidates) == 0 {
		return nil, nil
	}

	matches := make([]Candidate, 0, len(candidates))
	var diags []Diagnostic

	for _, cand := range candidates {
		if cand.ID == 0 || cand.ID == target.ID {
			continue
		}

		score, err := e.scoreCandidate(target, cand)
		if err != nil {
			e.log.Printf("[warn] operation=find_connections target=%d candidate=%d error=%v",
				target.ID, cand.ID, err)
			diags = append(diags, Diagnostic{
				TargetID:    target.ID,
				CandidateID: cand.ID,
				Reason:      err.Error(),
			})
			continue
		}

		if score >= threshold {
			matches = append(matches, Candidate{Artifact: cand, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Artifact.ID < matches[j].Artifact.ID
	})

	return matches, diags
}

// scoreCandidate guards a single pair computation so one malformed candidate
// never aborts the batch.
func (e *Engine) scoreCandidate(target, cand domain.Artifact) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring pair (%d, %d): %v", target.ID, cand.ID, r)
		}
	}()
	return e.Score(target, cand), nil
}
