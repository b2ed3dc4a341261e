// package i18n holds the user facing strings the client produces, rendered
// through golang.org/x/text/message.
package i18n

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Messages formats the messages the client hands to its callers.
type Messages interface {
	// ResponseCode describes a response with an unexpected HTTP status.
	ResponseCode(lang language.Tag, code int) string
}

const keyResponseCode = "err_response_code"

// x/text has no constant for Bokmål, only the macrolanguage "no"
var norwegianBokmål = language.MustParse("nb")

// first tag is the fallback
var supported = []language.Tag{
	language.English,
	norwegianBokmål,
	language.German,
}

var templates = map[language.Tag]string{
	language.English: "The server returned HTTP error code %s",
	norwegianBokmål:  "Serveren returnerte HTTP-feilkode %s",
	language.German:  "Der Server hat den HTTP-Fehlercode %s zurückgegeben",
}

type catalogMessages struct {
	cat     catalog.Catalog
	matcher language.Matcher
}

// Default is backed by the built in catalog.
var Default Messages = New()

func New() Messages {
	b := catalog.NewBuilder(catalog.Fallback(supported[0]))
	for tag, tmpl := range templates {
		if err := b.SetString(tag, keyResponseCode, tmpl); err != nil {
			panic(err)
		}
	}
	return &catalogMessages{cat: b, matcher: language.NewMatcher(supported)}
}

// match picks one of the supported tags exactly, the tag returned by the
// matcher itself may carry region extensions the catalog knows nothing about.
func (m *catalogMessages) match(lang language.Tag) language.Tag {
	_, i, conf := m.matcher.Match(lang)
	if conf == language.No {
		return supported[0]
	}
	return supported[i]
}

func (m *catalogMessages) ResponseCode(lang language.Tag, code int) string {
	p := message.NewPrinter(m.match(lang), message.Catalog(m.cat))
	// a status code is an identifier, %d would get digit grouping
	return p.Sprintf(keyResponseCode, strconv.Itoa(code))
}
