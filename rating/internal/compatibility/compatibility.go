// Package compatibility computes pairwise taste similarity between users
// from the items they have both rated.
package compatibility

import (
	"math"
	"sort"
	"strconv"

	"cinecircle/rating/pkg/model"
)

// Similarity is a score in [0,100], or NoOverlap when two users share no
// rated items.
type Similarity struct {
	value float64
	valid bool
}

// NoOverlap is the similarity of users without shared rated items.
var NoOverlap = Similarity{}

// Score returns a valid similarity, clamped to [0,100].
func Score(v float64) Similarity {
	return Similarity{value: math.Max(0, math.Min(100, v)), valid: true}
}

// Value returns the score and whether it is valid.
func (s Similarity) Value() (float64, bool) {
	return s.value, s.valid
}

// Ptr returns the score, or nil for NoOverlap.
func (s Similarity) Ptr() *float64 {
	if !s.valid {
		return nil
	}
	v := s.value
	return &v
}

func (s Similarity) String() string {
	if !s.valid {
		return "no-overlap"
	}
	return strconv.FormatFloat(s.value, 'f', 2, 64)
}

// MarshalJSON encodes NoOverlap as null.
func (s Similarity) MarshalJSON() ([]byte, error) {
	if !s.valid {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, s.value, 'f', -1, 64), nil
}

// Pairing is one member's similarity to another member.
type Pairing struct {
	UserID      model.UserID `json:"userId"`
	Similarity  Similarity   `json:"similarity"`
	SharedCount int          `json:"sharedCount"`
}

// Member is a member's aggregate compatibility with the rest of the group.
type Member struct {
	UserID    model.UserID `json:"userId"`
	Aggregate Similarity   `json:"aggregate"`
	Pairings  []Pairing    `json:"pairings"`
}

// Edge is the similarity between two distinct users.
type Edge struct {
	UserA       model.UserID `json:"userA"`
	UserB       model.UserID `json:"userB"`
	Similarity  Similarity   `json:"similarity"`
	SharedCount int          `json:"sharedCount"`
}

// Report holds the similarity matrix and the ranked member aggregates.
type Report struct {
	Members []Member `json:"members"`
	Edges   []Edge   `json:"edges"`
}

// Scores maps each rated item to the user's overall score.
type Scores map[model.ItemID]int

// Pair returns the similarity of two score sets and how many items they share:
// 100 minus the mean absolute score difference over shared items, floored at 0.
func Pair(a, b Scores) (Similarity, int) {
	if len(b) < len(a) {
		a, b = b, a
	}
	var diff float64
	shared := 0
	for item, sa := range a {
		sb, ok := b[item]
		if !ok {
			continue
		}
		diff += math.Abs(float64(sa - sb))
		shared++
	}
	if shared == 0 {
		return NoOverlap, 0
	}
	return Score(100 - diff/float64(shared)), shared
}

// Compute builds the compatibility report for the given users. Fewer than
// two users yield an empty report.
func Compute(scores map[model.UserID]Scores) Report {
	users := make([]model.UserID, 0, len(scores))
	for u := range scores {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	if len(users) < 2 {
		return Report{}
	}

	pairings := make(map[model.UserID][]Pairing, len(users))
	var edges []Edge
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			a, b := users[i], users[j]
			sim, shared := Pair(scores[a], scores[b])
			edges = append(edges, Edge{UserA: a, UserB: b, Similarity: sim, SharedCount: shared})
			pairings[a] = append(pairings[a], Pairing{UserID: b, Similarity: sim, SharedCount: shared})
			pairings[b] = append(pairings[b], Pairing{UserID: a, Similarity: sim, SharedCount: shared})
		}
	}

	members := make([]Member, 0, len(users))
	for _, u := range users {
		ps := pairings[u]
		sortPairings(ps)
		members = append(members, Member{UserID: u, Aggregate: aggregate(ps), Pairings: ps})
	}
	sort.SliceStable(members, func(i, j int) bool {
		if c := compare(members[i].Aggregate, members[j].Aggregate); c != 0 {
			return c > 0
		}
		return members[i].UserID < members[j].UserID
	})
	return Report{Members: members, Edges: edges}
}

// aggregate is the mean over valid pairings, or NoOverlap when there are none.
func aggregate(ps []Pairing) Similarity {
	var sum float64
	n := 0
	for _, p := range ps {
		if v, ok := p.Similarity.Value(); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return NoOverlap
	}
	return Score(sum / float64(n))
}

// sortPairings orders valid pairings by similarity descending, followed by
// NoOverlap pairings by shared count descending. Ties break on user id.
func sortPairings(ps []Pairing) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if c := compare(a.Similarity, b.Similarity); c != 0 {
			return c > 0
		}
		if !a.Similarity.valid && a.SharedCount != b.SharedCount {
			return a.SharedCount > b.SharedCount
		}
		return a.UserID < b.UserID
	})
}

// compare orders similarities with NoOverlap below every valid score.
func compare(a, b Similarity) int {
	switch {
	case a.valid && !b.valid:
		return 1
	case !a.valid && b.valid:
		return -1
	case !a.valid && !b.valid:
		return 0
	case a.value > b.value:
		return 1
	case a.value < b.value:
		return -1
	}
	return 0
}
