package term

import "strings"

// Keyword is one of the fixed period phrases understood without the
// natural-language parser.
type Keyword int

const (
	Today Keyword = iota
	Yesterday
	DayBeforeYesterday
	Tomorrow
	DayAfterTomorrow
	ThisMonth
	LastMonth
	NextMonth
	ThisYear
	LastYear
	NextYear
	keywordCount
)

var keywordPhrases = [keywordCount]string{
	Today:              "today",
	Yesterday:          "yesterday",
	DayBeforeYesterday: "the day before yesterday",
	Tomorrow:           "tomorrow",
	DayAfterTomorrow:   "the day after tomorrow",
	ThisMonth:          "this month",
	LastMonth:          "last month",
	NextMonth:          "next month",
	ThisYear:           "this year",
	LastYear:           "last year",
	NextYear:           "next year",
}

func (k Keyword) String() string {
	if k < 0 || k >= keywordCount {
		return "unknown"
	}
	return keywordPhrases[k]
}

// LookupKeyword matches a phrase case-insensitively, ignoring extra
// whitespace.
func LookupKeyword(phrase string) (Keyword, bool) {
	phrase = strings.ToLower(strings.Join(strings.Fields(phrase), " "))
	for k, p := range keywordPhrases {
		if p == phrase {
			return Keyword(k), true
		}
	}
	return 0, false
}

// Keywords lists the vocabulary in declaration order.
func Keywords() []Keyword {
	ks := make([]Keyword, 0, keywordCount)
	for k := Today; k < keywordCount; k++ {
		ks = append(ks, k)
	}
	return ks
}
