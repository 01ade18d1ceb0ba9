package graph

import "strings"

type Resolution int

const (
	// ResolvedPackage means the specifier belongs to a declared package.
	ResolvedPackage Resolution = iota
	// ResolvedLocal means the specifier is a relative path into the
	// analyzed project itself.
	ResolvedLocal
	// ResolvedUnknown means the specifier's owning package is not in the
	// declared list.
	ResolvedUnknown
)

// ResolveSpecifier maps a raw import specifier to its owning declared
// package. Scoped specifiers (@scope/pkg/...) resolve on their first two
// path segments, everything else on the first. Local and unrecognized
// specifiers produce no edge.
func ResolveSpecifier(specifier string, pkgs []Package) (string, Resolution) {
	if strings.HasPrefix(specifier, ".") {
		return "", ResolvedLocal
	}

	name := packageName(specifier)
	for _, p := range pkgs {
		if p.Name == name {
			return name, ResolvedPackage
		}
	}
	return "", ResolvedUnknown
}

func packageName(specifier string) string {
	parts := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
