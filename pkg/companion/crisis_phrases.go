package companion

// crisisPhrases is the fixed self-harm/suicidal-ideation list. Matching
// any of these forces maximum escalation regardless of other keywords.
var crisisPhrases = []string{
	"suicidal",
	"suicide",
	"kill myself",
	"want to die",
	"end my life",
	"hurt myself",
	"harm myself",
}

// CrisisPhrases returns a copy of the fixed self-harm phrase list.
func CrisisPhrases() []string {
	out := make([]string, len(crisisPhrases))
	copy(out, crisisPhrases)
	return out
}
