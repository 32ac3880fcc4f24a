// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary folds verification maps into statistics and renders them
// as tables, JSON, YAML, and report files.
package summary

import (
	"math"
	"sort"

	"github.com/pdiddy/metadata-verifier/pkg/types"
)

// Summarize computes statistics for one verification map. Identifier-cell
// verdicts feed the presence counts; datatype-cell verdicts feed the
// datatype counts.
func Summarize(m types.VerificationMap) types.Stats {
	var s types.Stats

	for _, c := range sortedCoordinates(m) {
		v := m[c]
		if v.Kind == types.CellDatatype {
			countDatatype(&s, v)
			continue
		}

		s.Total++
		switch {
		case v.IsNotFoundIndicator:
			s.Placeholders++
			continue
		case v.FoundInAll():
			s.FoundInAll++
		case v.FoundInAny():
			s.Discrepancies++
		default:
			s.NotFound++
		}

		for _, name := range v.Sources {
			ss, seen := s.Sources[name]
			if !seen {
				if s.Sources == nil {
					s.Sources = make(map[string]types.SourceStats)
				}
				s.SourceOrder = append(s.SourceOrder, name)
			}
			if v.SourceResults[name].Exists {
				ss.Found++
			} else {
				ss.NotFound++
			}
			s.Sources[name] = ss
		}
	}

	finish(&s)
	return s
}

// SummarizeMany summarizes each sheet separately and sums the per-sheet
// counts into Combined. Maps are never merged: sheets reuse coordinates.
// Combined percentages are recomputed from the summed counts.
func SummarizeMany(sheets []types.SheetVerification) types.MultiStats {
	ms := types.MultiStats{Sheets: make([]types.SheetStats, 0, len(sheets))}
	for _, sh := range sheets {
		st := Summarize(sh.Verdicts)
		ms.Sheets = append(ms.Sheets, types.SheetStats{Name: sh.Name, Stats: st})
		ms.Combined = add(ms.Combined, st)
	}
	finish(&ms.Combined)
	return ms
}

func countDatatype(s *types.Stats, v types.Verdict) {
	switch v.DatatypeState {
	case types.DatatypeMatched:
		s.DatatypeMatched++
	case types.DatatypeMismatched:
		s.DatatypeMismatched++
	default:
		s.DatatypeNotAsserted++
	}
}

// add sums the counts of b into a. Percentages are left for finish.
func add(a, b types.Stats) types.Stats {
	a.Total += b.Total
	a.FoundInAll += b.FoundInAll
	a.Discrepancies += b.Discrepancies
	a.NotFound += b.NotFound
	a.Placeholders += b.Placeholders
	a.DatatypeMatched += b.DatatypeMatched
	a.DatatypeMismatched += b.DatatypeMismatched
	a.DatatypeNotAsserted += b.DatatypeNotAsserted

	for _, name := range b.SourceOrder {
		if a.Sources == nil {
			a.Sources = make(map[string]types.SourceStats)
		}
		sa, seen := a.Sources[name]
		if !seen {
			a.SourceOrder = append(a.SourceOrder, name)
		}
		sb := b.Sources[name]
		sa.Found += sb.Found
		sa.NotFound += sb.NotFound
		a.Sources[name] = sa
	}
	return a
}

// finish fills every percentage from the counts.
func finish(s *types.Stats) {
	s.FoundInAllPercent = Percent(s.FoundInAll, s.Total)
	s.DiscrepancyPercent = Percent(s.Discrepancies, s.Total)
	s.NotFoundPercent = Percent(s.NotFound, s.Total)
	s.PlaceholderPercent = Percent(s.Placeholders, s.Total)
	for name, ss := range s.Sources {
		ss.FoundPercent = Percent(ss.Found, s.Total)
		s.Sources[name] = ss
	}
}

// Percent returns round(part/total*100), or 0 when total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func sortedCoordinates(m types.VerificationMap) []types.Coordinate {
	coords := make([]types.Coordinate, 0, len(m))
	for c := range m {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Row != coords[j].Row {
			return coords[i].Row < coords[j].Row
		}
		return coords[i].Col < coords[j].Col
	})
	return coords
}
