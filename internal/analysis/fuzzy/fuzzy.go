// Package fuzzy provides lexical string similarity scores.
package fuzzy

// MaxScore is the score of two identical strings.
const MaxScore = 100.0

// Ratio returns the normalised indel similarity of a and b on a 0-100 scale.
// The indel distance counts insertions and deletions only, so the ratio is
// 2*LCS / (len(a)+len(b)) over runes. Two empty strings score MaxScore.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return MaxScore
	}
	return MaxScore * float64(2*lcsLength(ra, rb)) / float64(total)
}

// BestRatio returns the highest Ratio of s against any candidate.
// It returns 0 when there are no candidates.
func BestRatio(s string, candidates []string) float64 {
	best := 0.0
	for _, c := range candidates {
		if r := Ratio(s, c); r > best {
			best = r
			if best == MaxScore {
				break
			}
		}
	}
	return best
}

// lcsLength returns the length of the longest common subsequence.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
