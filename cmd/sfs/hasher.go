package main

import (
	"fmt"

	"github.com/wolfiwolf/sfs/sfs"
)

func resolveHasher(name string) (sfs.Hasher, error) {
	switch name {
	case "", "legacy":
		return sfs.LegacyHash{}, nil
	case "fnv1a":
		return sfs.FNV1aHash{}, nil
	default:
		return nil, fmt.Errorf("unknown hasher %q (want legacy or fnv1a)", name)
	}
}
