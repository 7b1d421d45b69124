package classify

import "strings"

// TopicWords and LevelWords drive the leads-scoring variant.
var (
	TopicWords = []string{"training", "learning", "l&d", "development", "enablement", "instructional", "education"}
	LevelWords = []string{"manager", "director", "head", "lead", "principal", "vp", "vice president", "senior"}
)

const (
	pointsPerHit  = 20
	maxTopicHits  = 3
	maxLevelHits  = 2
	maxMatchScore = 100
)

// Score rates a title from 0 to 100: 20 points per distinct topic word (at
// most 3) plus 20 points per distinct level word (at most 2).
func Score(title string) int {
	t := strings.ToLower(title)
	topic := min(countHits(t, TopicWords), maxTopicHits)
	level := min(countHits(t, LevelWords), maxLevelHits)
	return min((topic+level)*pointsPerHit, maxMatchScore)
}
