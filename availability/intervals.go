package availability

import "meetcal/models"

// SubtractRanges carves the blocked ranges out of working and returns the
// continuous open intervals that remain, in order.
func SubtractRanges(working models.TimeRange, blocked []models.TimeRange) []models.TimeRange {
	open := []models.TimeRange{working}
	for _, block := range blocked {
		var updated []models.TimeRange
		for _, iv := range open {
			if block.End.Compare(iv.Start) <= 0 || block.Start.Compare(iv.End) >= 0 {
				updated = append(updated, iv)
				continue
			}
			if block.Start.After(iv.Start) {
				updated = append(updated, models.TimeRange{Start: iv.Start, End: block.Start})
			}
			if block.End.Before(iv.End) {
				updated = append(updated, models.TimeRange{Start: block.End, End: iv.End})
			}
		}
		open = updated
	}
	return open
}

// RemoveRanges drops every range in remove from ranges, comparing exact
// start/end pairs. The calendar endpoint uses it to strip a user's own booked
// periods out of the unavailable set so their sessions stay draggable.
func RemoveRanges(ranges []models.TimeRange, remove []models.TimeRange) []models.TimeRange {
	if len(remove) == 0 {
		return ranges
	}
	removed := make(map[string]struct{}, len(remove))
	for _, r := range remove {
		removed[r.String()] = struct{}{}
	}
	var kept []models.TimeRange
	for _, r := range ranges {
		if _, drop := removed[r.String()]; drop {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// Overlaps reports whether a and b share any instant, boundary contact
// included.
func Overlaps(a, b models.TimeRange) bool {
	return a.Start.Compare(b.End) <= 0 && b.Start.Compare(a.End) <= 0
}
