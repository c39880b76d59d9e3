package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoarsePOS(t *testing.T) {
	tests := []struct {
		tag  string
		text string
		want POS
	}{
		{tag: "NN", text: "developer", want: POSNoun},
		{tag: "NNS", text: "developers", want: POSNoun},
		{tag: "NNP", text: "python", want: POSProperNoun},
		{tag: "NNPS", text: "americans", want: POSProperNoun},
		{tag: "VBG", text: "looking", want: POSVerb},
		{tag: "JJ", text: "experienced", want: POSAdjective},
		{tag: "IN", text: "with", want: POSAdposition},
		{tag: "CD", text: "5", want: POSNumber},
		{tag: ".", text: ".", want: POSPunctuation},
		{tag: "NN", text: ",", want: POSPunctuation},
		{tag: "$", text: "$", want: POSSymbol},
		{tag: "??", text: "zzz", want: POSOther},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, coarsePOS(tt.tag, tt.text))
		})
	}
}
