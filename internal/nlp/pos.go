package nlp

import (
	"strings"
	"unicode"
)

// pennToPOS maps Penn Treebank tags produced by the tagger onto coarse tags.
var pennToPOS = map[string]POS{
	"NN":   POSNoun,
	"NNS":  POSNoun,
	"NNP":  POSProperNoun,
	"NNPS": POSProperNoun,
	"VB":   POSVerb,
	"VBD":  POSVerb,
	"VBG":  POSVerb,
	"VBN":  POSVerb,
	"VBP":  POSVerb,
	"VBZ":  POSVerb,
	"MD":   POSAuxiliary,
	"JJ":   POSAdjective,
	"JJR":  POSAdjective,
	"JJS":  POSAdjective,
	"RB":   POSAdverb,
	"RBR":  POSAdverb,
	"RBS":  POSAdverb,
	"WRB":  POSAdverb,
	"PRP":  POSPronoun,
	"PRP$": POSPronoun,
	"WP":   POSPronoun,
	"WP$":  POSPronoun,
	"EX":   POSPronoun,
	"DT":   POSDeterminer,
	"PDT":  POSDeterminer,
	"WDT":  POSDeterminer,
	"IN":   POSAdposition,
	"RP":   POSParticle,
	"TO":   POSParticle,
	"POS":  POSParticle,
	"CC":   POSConjunction,
	"CD":   POSNumber,
	"UH":   POSInterjection,
	"SYM":  POSSymbol,
	"$":    POSSymbol,
	"#":    POSSymbol,
	"FW":   POSOther,
	"LS":   POSOther,
}

// coarsePOS maps a tagger tag to a coarse category. Tokens without any
// letter or digit are punctuation whatever the tagger said.
func coarsePOS(tag, text string) POS {
	if !hasAlnum(text) {
		if tag == "$" || tag == "#" || tag == "SYM" {
			return POSSymbol
		}
		return POSPunctuation
	}
	if pos, ok := pennToPOS[strings.ToUpper(tag)]; ok {
		return pos
	}
	return POSOther
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
