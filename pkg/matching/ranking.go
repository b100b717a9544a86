package matching

import (
	"sort"

	"github.com/Ramsey-B/clover/pkg/models"
)

// RankPartners orders scored partners by descending score and keeps the top
// n. Ordering is stable, so equally-scored partners keep their fetch order.
// Partners that scored zero are dropped before ranking; they never reach the
// stored match set. The first survivor is flagged as the primary match.
func RankPartners(scored []models.ScoredPartner, n int) []models.ScoredPartner {
	eligible := scored[:0]
	for _, partner := range scored {
		if partner.Score > 0 {
			eligible = append(eligible, partner)
		}
	}
	scored = eligible

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > n {
		scored = scored[:n]
	}

	for i := range scored {
		scored[i].IsPrimary = i == 0
	}

	return scored
}

// BestPodcast returns the highest-scoring podcast, or nil when nothing
// scored above zero.
func BestPodcast(scored []models.ScoredPodcast) *models.ScoredPodcast {
	best := -1
	for i := range scored {
		if scored[i].Score <= 0 {
			continue
		}
		if best < 0 || scored[i].Score > scored[best].Score {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &scored[best]
}

// BestEvent returns the highest-scoring event, or nil when nothing scored
// above zero.
func BestEvent(scored []models.ScoredEvent) *models.ScoredEvent {
	best := -1
	for i := range scored {
		if scored[i].Score <= 0 {
			continue
		}
		if best < 0 || scored[i].Score > scored[best].Score {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &scored[best]
}

// BestManufacturer returns the highest-scoring manufacturer, or nil when
// nothing scored above zero.
func BestManufacturer(scored []models.ScoredManufacturer) *models.ScoredManufacturer {
	best := -1
	for i := range scored {
		if scored[i].Score <= 0 {
			continue
		}
		if best < 0 || scored[i].Score > scored[best].Score {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &scored[best]
}
