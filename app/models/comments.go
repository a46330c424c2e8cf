package models

import (
	"sort"
	"time"
)

// idSet builds a membership set from a selection of comment ids.
func idSet(ids []int) map[int]bool {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// removeMatching drops every comment whose id is in the set and returns
// the remaining sequence in its original order.
func removeMatching(comments []Comment, set map[int]bool) []Comment {
	kept := comments[:0]
	for _, c := range comments {
		if !set[c.ID] {
			kept = append(kept, c)
		}
	}
	return kept
}

// Delete removes every comment whose id is in ids from both partitions,
// regardless of which one holds it. Ids with no matching comment are
// ignored, so repeating a delete is a no-op.
func (pc *PostComments) Delete(ids []int) {
	set := idSet(ids)
	pc.Comments = removeMatching(pc.Comments, set)
	pc.Spam = removeMatching(pc.Spam, set)
}

// MarkSpam selects the accepted comments whose ids are in ids, removes
// the selection from both partitions and returns it for spam-feedback
// reporting. Removal mirrors Delete rather than assuming membership.
//
// TODO: the selection is dropped entirely instead of being re-filed
// under Spam; decide whether spam-marked comments should be retained
// for later ham review before changing the stored shape.
func (pc *PostComments) MarkSpam(ids []int) []Comment {
	set := idSet(ids)
	var selected []Comment
	for _, c := range pc.Comments {
		if set[c.ID] {
			selected = append(selected, c)
		}
	}

	removed := idSet(nil)
	for _, c := range selected {
		removed[c.ID] = true
	}
	pc.Comments = removeMatching(pc.Comments, removed)
	pc.Spam = removeMatching(pc.Spam, removed)

	return selected
}

// MarkHam selects the spam comments whose ids are in ids, clears their
// spam flag, moves them back into the accepted partition and returns
// the selection for ham-feedback reporting.
func (pc *PostComments) MarkHam(ids []int) []Comment {
	set := idSet(ids)
	var selected []Comment
	for _, c := range pc.Spam {
		if set[c.ID] {
			c.IsSpam = false
			selected = append(selected, c)
		}
	}

	removed := idSet(nil)
	for _, c := range selected {
		removed[c.ID] = true
	}
	pc.Spam = removeMatching(pc.Spam, removed)
	pc.Comments = append(pc.Comments, selected...)

	return selected
}

// Apply runs the given moderation command against the aggregate and
// returns the comments that need external spam feedback. The command
// set is closed, so the switch is exhaustive.
func (pc *PostComments) Apply(cmd ModerationCommand, ids []int) []Comment {
	switch cmd {
	case CommandDelete:
		pc.Delete(ids)
		return nil
	case CommandMarkSpam:
		return pc.MarkSpam(ids)
	case CommandMarkHam:
		return pc.MarkHam(ids)
	}
	return nil
}

// All returns every comment from both partitions merged in creation
// order, the way the admin details view presents them.
func (pc *PostComments) All() []Comment {
	all := make([]Comment, 0, len(pc.Comments)+len(pc.Spam))
	all = append(all, pc.Comments...)
	all = append(all, pc.Spam...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

// LastCommentAt returns the creation time of the newest comment in
// either partition, or the zero time when the aggregate is empty.
func (pc *PostComments) LastCommentAt() time.Time {
	var last time.Time
	for _, c := range pc.All() {
		if c.CreatedAt.After(last) {
			last = c.CreatedAt
		}
	}
	return last
}
