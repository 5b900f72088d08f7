// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package entity

import (
	"strings"
)

// importRanks indexes each supported type by its position in the fixed
// import precedence list.
var importRanks = func() map[Type]int {
	ranks := make(map[Type]int, len(supportedTypes))
	for i, t := range supportedTypes {
		ranks[t] = i
	}
	return ranks
}()

// CompareImportOrder ranks two entity types for batch import, returning a
// negative value if a must be imported before b, a positive value if after,
// and zero if the order does not matter. Types in the fixed supported list
// are ranked by their position in it. Types outside the list have no defined
// precedence; they sort after every ranked type, and among themselves in
// lexical order, so that sorting a batch is deterministic regardless of how
// the snapshots or importers were assembled.
func CompareImportOrder(a, b Type) int {
	aRank, aRanked := importRanks[a]
	bRank, bRanked := importRanks[b]
	switch {
	case aRanked && bRanked:
		return aRank - bRank
	case aRanked:
		return -1
	case bRanked:
		return 1
	default:
		return strings.Compare(string(a), string(b))
	}
}
