// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "sync"

// internTable canonicalizes short decoded strings across every ABCFile
// parsed in this process, the one piece of shared mutable state the parser
// touches. sync.Map is the concurrent, insertion-idempotent, single-writer-
// many-reader structure the design notes call for: a miss stores the first
// copy seen and every later occurrence of the same content returns it, so
// two strings of equal content compare identical by reference.
var internTable sync.Map

// intern returns the canonical copy of s, storing s as the canonical copy
// the first time its content is seen.
func intern(s string) string {
	if v, ok := internTable.Load(s); ok {
		return v.(string)
	}
	v, _ := internTable.LoadOrStore(s, s)
	return v.(string)
}
