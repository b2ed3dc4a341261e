package model

import (
	"strconv"
	"strings"
)

// Version is a backend protocol version of the form major[.minor[.patch]].
type Version struct {
	raw                 string
	major, minor, patch int
}

// ParseVersion returns nil if s is empty or not a version.
func ParseVersion(s string) *Version {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	if s == "" || len(parts) > 3 {
		return nil
	}
	var n [3]int
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return nil
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		n[i] = v
	}
	return &Version{raw: s, major: n[0], minor: n[1], patch: n[2]}
}

// MustParseVersion is like [ParseVersion] but panics on malformed input. it is
// meant for constants in code.
func MustParseVersion(s string) Version {
	v := ParseVersion(s)
	if v == nil {
		panic("model: malformed version " + strconv.Quote(s))
	}
	return *v
}

func (v Version) Major() int { return v.major }
func (v Version) Minor() int { return v.minor }
func (v Version) Patch() int { return v.patch }

// Compare returns -1, 0 or 1. missing components count as zero, so 2.0 and
// 2.0.0 compare equal.
func (v Version) Compare(o Version) int {
	a := [3]int{v.major, v.minor, v.patch}
	b := [3]int{o.major, o.minor, o.patch}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether the backend is new enough for a feature introduced
// in o.
func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }

func (v Version) String() string { return v.raw }
