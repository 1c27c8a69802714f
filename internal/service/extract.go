package service

import (
	"regexp"
	"strings"

	"github.com/pharmalytics/nexus-go/internal/model"
)

var (
	doseRe  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml|units?))\b`)
	freqRe  = regexp.MustCompile(`(?i)\b(once daily|twice daily|three times (?:a day|daily)|every \d+ hours|daily|nightly|weekly|as needed|bid|tid|qid)\b`)
	routeRe = regexp.MustCompile(`(?i)\b(orally|oral|intravenously|intravenous|iv|intramuscular|im|subcutaneously|subcutaneous|topically|topical)\b`)
)

// extractWindow bounds how far past a medication mention the extractor looks
// for its dosage, frequency and route.
const extractWindow = 80

// extractMedications finds known medication mentions in free text along with
// nearby dosage, frequency and route details.
func extractMedications(text string) []model.ExtractedMedication {
	lower := strings.ToLower(text)

	type mention struct {
		name string
		pos  int
	}
	var mentions []mention
	for name := range drugClasses {
		idx := indexWord(lower, name)
		if idx < 0 {
			continue
		}
		mentions = append(mentions, mention{name: name, pos: idx})
	}

	// Order by position so output follows the text.
	for i := 1; i < len(mentions); i++ {
		for j := i; j > 0 && mentions[j-1].pos > mentions[j].pos; j-- {
			mentions[j-1], mentions[j] = mentions[j], mentions[j-1]
		}
	}

	meds := make([]model.ExtractedMedication, 0, len(mentions))
	for _, m := range mentions {
		end := m.pos + len(m.name) + extractWindow
		if end > len(text) {
			end = len(text)
		}
		window := text[m.pos+len(m.name) : end]

		med := model.ExtractedMedication{Name: titleName(m.name)}
		if match := doseRe.FindStringSubmatch(window); match != nil {
			med.Dosage = strings.ToLower(strings.Join(strings.Fields(match[1]), ""))
		}
		if match := freqRe.FindStringSubmatch(window); match != nil {
			med.Frequency = strings.ToLower(match[1])
		}
		if match := routeRe.FindStringSubmatch(window); match != nil {
			med.Route = normalizeRoute(match[1])
		}
		meds = append(meds, med)
	}
	return meds
}

// indexWord finds name in text at a word boundary, or -1.
func indexWord(text, name string) int {
	from := 0
	for {
		idx := strings.Index(text[from:], name)
		if idx < 0 {
			return -1
		}
		idx += from
		beforeOK := idx == 0 || !isWordChar(text[idx-1])
		afterOK := idx+len(name) == len(text) || !isWordChar(text[idx+len(name)])
		if beforeOK && afterOK {
			return idx
		}
		from = idx + len(name)
		if from >= len(text) {
			return -1
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func normalizeRoute(route string) string {
	switch strings.ToLower(route) {
	case "oral", "orally":
		return "oral"
	case "iv", "intravenous", "intravenously":
		return "intravenous"
	case "im", "intramuscular":
		return "intramuscular"
	case "subcutaneous", "subcutaneously":
		return "subcutaneous"
	case "topical", "topically":
		return "topical"
	}
	return strings.ToLower(route)
}
