package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLang is used when the environment names no usable locale.
var DefaultLang = language.English

// variables consulted by Default, highest precedence first
var envVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Default returns the locale of the process environment.
func Default() language.Tag {
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) language.Tag {
	for _, k := range envVars {
		if v := getenv(k); v != "" {
			return Parse(v)
		}
	}
	return DefaultLang
}

// Parse reads a POSIX locale name (`ll_CC.charset@modifier`) or a BCP 47 tag.
// names it can't make sense of, and "C" or "POSIX", are [DefaultLang].
func Parse(s string) language.Tag {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	switch s {
	case "", "C", "POSIX":
		return DefaultLang
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return DefaultLang
	}
	return tag
}

// Language returns the base language subtag of tag, like "nb" for nb-NO. it is
// what goes into Accept-Language.
func Language(tag language.Tag) string {
	base, conf := tag.Base()
	if conf == language.No {
		base, _ = DefaultLang.Base()
	}
	return base.String()
}
