package scorer

import (
	"math"

	catalogmodel "cinecircle/catalog/pkg/model"
)

// groupFit blends mood and taste fit into a 0-100 score.
func (w Weights) groupFit(item *catalogmodel.CatalogItem, moods []catalogmodel.Mood, p *Profile) int {
	score := (w.Mood*w.moodFit(item, moods, p) + w.Taste*w.tasteFit(item, p)) / (w.Mood + w.Taste)
	return int(math.Round(100 * clamp01(score)))
}

// moodFit rates how specifically an item matches the requested moods. An
// item is rewarded for its selected mood scores and penalised when it
// scores higher on the unselected moods. Raising a selected mood score
// never lowers the result. Without requested moods the item is compared to
// the group's liked-mood vector.
func (w Weights) moodFit(item *catalogmodel.CatalogItem, moods []catalogmodel.Mood, p *Profile) float64 {
	scored := item.MoodScores.Complete()
	if len(moods) == 0 {
		if !scored || p.LikedMoods == nil {
			return neutral
		}
		var diff float64
		for _, m := range catalogmodel.Moods {
			diff += math.Abs(item.MoodScores[m] - p.LikedMoods[m])
		}
		return clamp01(1 - diff/float64(len(catalogmodel.Moods)))
	}
	if !scored {
		return 0
	}
	selected := make(map[catalogmodel.Mood]bool, len(moods))
	var sel float64
	for _, m := range moods {
		selected[m] = true
		sel += item.MoodScores[m]
	}
	sel /= float64(len(moods))
	var unsel float64
	n := 0
	for _, m := range catalogmodel.Moods {
		if !selected[m] {
			unsel += item.MoodScores[m]
			n++
		}
	}
	if n == 0 {
		return clamp01(sel)
	}
	unsel /= float64(n)
	return clamp01(sel - w.Specificity*math.Max(0, unsel-sel))
}

// tasteFit rates an item against the group's genre and decade affinities
// and its external quality.
func (w Weights) tasteFit(item *catalogmodel.CatalogItem, p *Profile) float64 {
	total := w.Genre + w.Decade + w.Quality
	if total <= 0 {
		return neutral
	}
	return (w.Genre*genreAffinity(item, p) + w.Decade*decadeAffinity(item, p) + w.Quality*quality(item)) / total
}

func genreAffinity(item *catalogmodel.CatalogItem, p *Profile) float64 {
	if len(item.Genres) == 0 {
		return p.Level
	}
	var sum float64
	for _, g := range item.Genres {
		if a, ok := p.Genres[g]; ok {
			sum += a
		} else {
			sum += p.Level
		}
	}
	return sum / float64(len(item.Genres))
}

func decadeAffinity(item *catalogmodel.CatalogItem, p *Profile) float64 {
	if item.Year <= 0 {
		return p.Level
	}
	if a, ok := p.Decades[decade(item.Year)]; ok {
		return a
	}
	return p.Level
}

func quality(item *catalogmodel.CatalogItem) float64 {
	if item.VoteCount <= 0 {
		return neutral
	}
	return clamp01(item.VoteAverage / 10)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
