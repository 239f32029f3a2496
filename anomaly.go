// Copyright 2021 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

// Anomalies recorded during a parse. These never abort parsing; they are
// informative only, surfaced on ABCFile.Anomalies for tooling.
var (
	// anoPrivateNamespaceHadName is reported when a private namespace's
	// name index was non-zero. The name is still discarded (private
	// namespaces are identity-distinct on every occurrence), but the
	// occurrence itself is worth recording.
	anoPrivateNamespaceHadName = "private namespace carried a discarded name index"

	// anoMetadataNoKeys is reported when a metadata tag declares zero
	// key/value pairs.
	anoMetadataNoKeys = "metadata tag has no keys"

	// anoTraitMetadataEmpty is reported when a trait sets ATTR_Metadata
	// but its metadata reference list is empty.
	anoTraitMetadataEmpty = "trait has ATTR_Metadata set but no metadata tags"

	// anoMethodBodyEmptyCode is reported when a method body declares zero
	// bytes of code.
	anoMethodBodyEmptyCode = "method body has zero-length code"
)

// addAnomaly appends anomaly to the parser's running list, skipping
// duplicates the same way pe.File.addAnomaly does.
func (p *parser) addAnomaly(anomaly string) {
	for _, a := range p.anomalies {
		if a == anomaly {
			return
		}
	}
	p.anomalies = append(p.anomalies, anomaly)
}
