package annotation

import "sort"

// LinkIdentity is the order-independent key of a relation between two spans. A link from
// a to b and a link from b to a share the same identity.
type LinkIdentity string

// Identity sorts the two span ids and concatenates them.
func Identity(spanID, targetID string) LinkIdentity {
	ids := []string{spanID, targetID}
	sort.Strings(ids)
	return LinkIdentity(ids[0] + ids[1])
}

func (i LinkIdentity) String() string {
	return string(i)
}
