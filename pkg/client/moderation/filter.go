package moderation

import "ascended/pkg/report"

// All disables a filter dimension.
const All = "all"

// Filter returns the reports matching status and typ in their original
// order. The input slice is not modified.
func Filter(reports []*report.Report, status, typ string) []*report.Report {
	res := make([]*report.Report, 0, len(reports))
	for _, r := range reports {
		if status != All && string(r.Status) != status {
			continue
		}
		if typ != All && string(r.Type) != typ {
			continue
		}
		res = append(res, r)
	}
	return res
}
