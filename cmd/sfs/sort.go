package main

import (
	"sort"

	"github.com/wolfiwolf/sfs/sfs"
)

func sortEntriesByOwner(entries []sfs.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Owner < entries[j].Owner
	})
}
