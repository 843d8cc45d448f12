package domain

import "strings"

// FilterYear returns the records for one year with their per-school pass
// percentage attached. Input order is preserved.
func FilterYear(records []ExamRecord, year int) []ScoredRecord {
	out := make([]ScoredRecord, 0, len(records)/2)
	for _, r := range records {
		if r.Year != year {
			continue
		}
		out = append(out, ScoredRecord{
			ExamRecord: r,
			Percent:    PassPercent(r.Pass, r.Total),
		})
	}
	return out
}

// Aggregate groups scored records by raw county label.
//
// Groups are emitted in first-seen order and each group's school details keep
// the row order of the input. Rows without a county label are dropped. Rows
// without a school name still count towards the totals but contribute neither
// a name nor a detail line.
func Aggregate(rows []ScoredRecord) []CountyAggregate {
	index := make(map[string]int)
	var (
		out   []CountyAggregate
		names [][]string
	)

	for _, r := range rows {
		if strings.TrimSpace(r.CountyLabel) == "" {
			continue
		}

		i, ok := index[r.CountyLabel]
		if !ok {
			i = len(out)
			index[r.CountyLabel] = i
			out = append(out, CountyAggregate{
				CountyLabel:   r.CountyLabel,
				CountyKey:     CountyKey(r.CountyLabel),
				SchoolDetails: []string{},
			})
			names = append(names, nil)
		}

		agg := &out[i]
		agg.Pass += r.Pass
		agg.Total += r.Total
		if r.HasSchool() {
			names[i] = append(names[i], r.School)
			agg.SchoolDetails = append(agg.SchoolDetails, FormatSchoolDetail(r.School, r.Percent))
		}
	}

	for i := range out {
		out[i].Schools = strings.Join(names[i], ", ")
		out[i].PassPercent = PassPercent(out[i].Pass, out[i].Total)
	}
	return out
}
