package problemgen

// MinPoints is the floor for any problem's award.
const MinPoints = 5

// Points returns the award for a generated problem: level*10 scaled by 25%
// per step of relative difficulty away from 3, never below MinPoints.
// Out-of-range difficulty is treated as 3.
func Points(level, relativeDifficulty int) int {
	if relativeDifficulty < 1 || relativeDifficulty > 5 {
		relativeDifficulty = 3
	}
	base := level * 10
	// base * (1 + (rd-3)*0.25) == base * (rd+1) / 4
	return max(MinPoints, base*(relativeDifficulty+1)/4)
}
