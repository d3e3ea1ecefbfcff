package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SignatureStep names one node to sign: the namespace-qualified element
// name (as the engine's id-attr selector expects) and the node's ID value.
type SignatureStep struct {
	NodeName string
	NodeID   string
}

// MultiSignaturePlan is an ordered sequence of signing steps. Steps must be
// ordered innermost first: each step re-serializes the whole document, so a
// later (outer) signature covers the already-signed inner content. The plan
// is executed strictly sequentially; ordering is the caller's contract and
// is never re-derived.
type MultiSignaturePlan []SignatureStep

// Covers checks that every placeholder reference in the document has a
// corresponding signing step. placeholderIDs are the node IDs referenced by
// pre-inserted signature templates. A plan that leaves a placeholder
// unsigned would produce a document with a permanently invalid signature,
// so the whole operation is rejected before any engine call.
func (p MultiSignaturePlan) Covers(placeholderIDs []string) error {
	planned := make(map[string]bool, len(p))
	for _, step := range p {
		planned[step.NodeID] = true
	}
	var missing []string
	for _, id := range placeholderIDs {
		if !planned[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return BadRequestError(fmt.Sprintf(
			"signing plan does not cover placeholder node(s): %s", strings.Join(missing, ", ")))
	}
	return nil
}

// Validate rejects structurally unusable plans.
func (p MultiSignaturePlan) Validate() error {
	if len(p) == 0 {
		return BadRequestError("signing plan is empty")
	}
	for i, step := range p {
		if step.NodeID == "" {
			return BadRequestError(fmt.Sprintf("signing plan step %d has no node id", i))
		}
		if step.NodeName == "" {
			return BadRequestError(fmt.Sprintf("signing plan step %d has no node name", i))
		}
	}
	return nil
}
