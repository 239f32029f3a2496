// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package abc

import "strings"

// Render produces a best-effort human-readable disassembly of a multiname,
// resolving pool references through f. It never returns an error: an
// out-of-range index renders as "?" rather than aborting, since this is a
// display helper, not a validating accessor.
func (f *ABCFile) Render(m *Multiname) string {
	if m == nil || !m.IsValid() {
		return "?"
	}

	if m.IsGenericClassName() {
		def, err := f.MultinameAt(int(m.Index1))
		if err != nil {
			return "?"
		}
		args, err := f.GenericArgListAt(int(m.Index2))
		if err != nil {
			return f.Render(def) + ".<?>"
		}
		rendered := make([]string, len(args))
		for i, a := range args {
			rendered[i] = f.Render(a)
		}
		return f.Render(def) + ".<" + strings.Join(rendered, ",") + ">"
	}

	ns := f.renderNamespacePart(m)
	name := f.renderLocalNamePart(m)

	// renderLocalNamePart already returns the literal "*" for a wildcard
	// local name (Index2 == 0); an empty name here is a real, resolved
	// empty string constant, not a wildcard, so it renders as "".
	var s string
	switch {
	case ns == "":
		s = name
	default:
		s = ns + "::" + name
	}

	if m.IsAttribute() {
		s = "@" + s
	}
	return s
}

func (f *ABCFile) renderNamespacePart(m *Multiname) string {
	if m.HasRuntimeNamespace() {
		return "{RTns}"
	}
	if m.UsesNamespaceSet() {
		set, err := f.NamespaceSetAt(int(m.Index1))
		if err != nil {
			return "?"
		}
		names := make([]string, len(set.Namespaces))
		for i, ns := range set.Namespaces {
			names[i] = f.renderNamespace(ns)
		}
		return strings.Join(names, ",")
	}
	ns, err := f.NamespaceAt(int(m.Index1))
	if err != nil {
		return "?"
	}
	return f.renderNamespace(ns)
}

func (f *ABCFile) renderNamespace(ns *Namespace) string {
	if ns == nil || ns.IsPublic() {
		return ""
	}
	return ns.Name
}

func (f *ABCFile) renderLocalNamePart(m *Multiname) string {
	if m.HasRuntimeLocalName() {
		return "{RTname}"
	}
	if m.Index2 == 0 {
		return "*"
	}
	s, err := f.StringAt(int(m.Index2))
	if err != nil {
		return "?"
	}
	return s
}
