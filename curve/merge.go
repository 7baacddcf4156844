package curve

// MergeLinesSpeed merges consecutive lines sharing a speed sign whose total
// elapsed time is within mergeLimit, replacing each run's individual
// speeds with their time-weighted mean. Runs are found
// left-to-right and do not overlap; lines is modified in place and also
// returned for convenience.
func MergeLinesSpeed(lines []Line, mergeLimit int64) []Line {
	if mergeLimit <= 0 {
		return lines
	}

	i := 0
	for i < len(lines)-1 {
		j := i
		for j < len(lines)-1 && lines[i].SpeedSign == lines[j+1].SpeedSign {
			j++
		}

		if i == j {
			i = j + 1
			continue
		}

		run := lines[i : j+1]
		var totalDat int64
		for _, l := range run {
			totalDat += l.Dat
		}
		if totalDat > mergeLimit {
			i = j + 1
			continue
		}

		avg := weightedAbsSpeed(run)
		for k := range run {
			run[k].AbsSpeed = avg
		}
		i = j + 1
	}
	return lines
}

func weightedAbsSpeed(lines []Line) float64 {
	var num, den float64
	for _, l := range lines {
		num += l.AbsSpeed * float64(l.Dat)
		den += float64(l.Dat)
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// CalculateWeightedSpeed returns the time-weighted mean absolute speed
// across lines, 0 when lines is empty.
func CalculateWeightedSpeed(lines []Line) float64 {
	if len(lines) == 0 {
		return 0
	}
	return weightedAbsSpeed(lines)
}
