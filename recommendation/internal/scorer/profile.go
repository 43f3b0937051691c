package scorer

import (
	"sort"

	catalogmodel "cinecircle/catalog/pkg/model"
	ratingmodel "cinecircle/rating/pkg/model"
	"cinecircle/recommendation/pkg/model"
)

// likedThreshold is the overall score from which a rating counts towards
// the liked-mood vector.
const likedThreshold = 70

// neutral is the affinity assumed when there is no signal.
const neutral = 0.5

// Profile defines a collective's aggregate taste built from its members'
// rating histories. Affinities and the level are on a 0-1 scale.
type Profile struct {
	Members []model.Member
	Genres  map[string]float64
	Decades map[int]float64
	// Level is the mean normalised overall score.
	Level float64
	// LikedMoods is the score-weighted mean mood vector of liked items, nil
	// when no liked item carries mood scores.
	LikedMoods catalogmodel.MoodScores
	// SeenBy lists, per item, the names of members who rated it.
	SeenBy  map[catalogmodel.ItemID][]string
	Ratings int
}

// BuildProfile aggregates the ratings of members. items holds the catalog
// data of rated items; ratings of unknown items still count towards the
// level and the seen-by lists.
func BuildProfile(members []model.Member, ratings []*ratingmodel.Rating, items map[catalogmodel.ItemID]*catalogmodel.CatalogItem) *Profile {
	p := &Profile{
		Members: members,
		Genres:  map[string]float64{},
		Decades: map[int]float64{},
		Level:   neutral,
		SeenBy:  map[catalogmodel.ItemID][]string{},
	}
	order := make(map[ratingmodel.UserID]int, len(members))
	for i, m := range members {
		order[m.UserID] = i
	}

	type acc struct{ sum, n float64 }
	genres := map[string]*acc{}
	decades := map[int]*acc{}
	var level acc
	var moodWeight float64
	moodSum := catalogmodel.MoodScores{}
	seen := map[catalogmodel.ItemID][]int{}

	for _, r := range ratings {
		idx, ok := order[r.UserID]
		if !ok {
			continue
		}
		p.Ratings++
		v := float64(r.OverallScore) / ratingmodel.MaxScore
		level.sum += v
		level.n++
		item := catalogmodel.ItemID(r.ItemID)
		seen[item] = append(seen[item], idx)

		ci, ok := items[item]
		if !ok {
			continue
		}
		for _, g := range ci.Genres {
			if genres[g] == nil {
				genres[g] = &acc{}
			}
			genres[g].sum += v
			genres[g].n++
		}
		if ci.Year > 0 {
			d := decade(ci.Year)
			if decades[d] == nil {
				decades[d] = &acc{}
			}
			decades[d].sum += v
			decades[d].n++
		}
		if r.OverallScore >= likedThreshold && ci.MoodScores.Complete() {
			for _, m := range catalogmodel.Moods {
				moodSum[m] += v * ci.MoodScores[m]
			}
			moodWeight += v
		}
	}

	if level.n > 0 {
		p.Level = level.sum / level.n
	}
	for g, a := range genres {
		p.Genres[g] = a.sum / a.n
	}
	for d, a := range decades {
		p.Decades[d] = a.sum / a.n
	}
	if moodWeight > 0 {
		p.LikedMoods = catalogmodel.MoodScores{}
		for _, m := range catalogmodel.Moods {
			p.LikedMoods[m] = moodSum[m] / moodWeight
		}
	}
	for item, idxs := range seen {
		sort.Ints(idxs)
		names := make([]string, 0, len(idxs))
		for i, idx := range idxs {
			if i > 0 && idxs[i-1] == idx {
				continue
			}
			names = append(names, members[idx].Name())
		}
		p.SeenBy[item] = names
	}
	return p
}

// TopGenres returns up to n genres the group rates above its own level,
// best first.
func (p *Profile) TopGenres(n int) []string {
	var res []string
	for g, a := range p.Genres {
		if a > p.Level {
			res = append(res, g)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if p.Genres[res[i]] != p.Genres[res[j]] {
			return p.Genres[res[i]] > p.Genres[res[j]]
		}
		return res[i] < res[j]
	})
	if len(res) > n {
		res = res[:n]
	}
	return res
}

func decade(year int) int {
	return year / 10 * 10
}
