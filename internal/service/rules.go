package service

import (
	"strings"

	"github.com/pharmalytics/nexus-go/internal/model"
)

// Pharmacological classes used by the rule engine. Classification is by
// well-known generic and brand names; unknown medications classify as "".
const (
	classAnticoagulant = "anticoagulant"
	classAntiplatelet  = "antiplatelet"
	classNSAID         = "nsaid"
	classStatin        = "statin"
	classMacrolide     = "macrolide"
	classACEInhibitor  = "ace_inhibitor"
	classDiuretic      = "potassium_sparing_diuretic"
	classSSRI          = "ssri"
	classOpioid        = "opioid"
	classBiguanide     = "biguanide"
	classBetaBlocker   = "beta_blocker"
	classPPI           = "ppi"
)

var drugClasses = map[string]string{
	"warfarin":       classAnticoagulant,
	"coumadin":       classAnticoagulant,
	"apixaban":       classAnticoagulant,
	"rivaroxaban":    classAnticoagulant,
	"aspirin":        classAntiplatelet,
	"clopidogrel":    classAntiplatelet,
	"plavix":         classAntiplatelet,
	"ibuprofen":      classNSAID,
	"naproxen":       classNSAID,
	"diclofenac":     classNSAID,
	"advil":          classNSAID,
	"simvastatin":    classStatin,
	"atorvastatin":   classStatin,
	"lipitor":        classStatin,
	"clarithromycin": classMacrolide,
	"erythromycin":   classMacrolide,
	"azithromycin":   classMacrolide,
	"lisinopril":     classACEInhibitor,
	"enalapril":      classACEInhibitor,
	"ramipril":       classACEInhibitor,
	"spironolactone": classDiuretic,
	"amiloride":      classDiuretic,
	"fluoxetine":     classSSRI,
	"sertraline":     classSSRI,
	"citalopram":     classSSRI,
	"tramadol":       classOpioid,
	"codeine":        classOpioid,
	"oxycodone":      classOpioid,
	"metformin":      classBiguanide,
	"metoprolol":     classBetaBlocker,
	"atenolol":       classBetaBlocker,
	"omeprazole":     classPPI,
	"pantoprazole":   classPPI,
}

// classRule describes the clinical consequences of combining two classes.
type classRule struct {
	severity        string
	mechanism       string
	clinicalEffects []string
	recommendation  string
	monitoring      string
}

type classPair struct{ a, b string }

// Pairs are stored with a <= b lexically; look up through classRuleFor.
var classRules = map[classPair]classRule{
	{classAnticoagulant, classAntiplatelet}: {
		severity:        model.SeverityHigh,
		mechanism:       "additive inhibition of coagulation and platelet aggregation",
		clinicalEffects: []string{"major bleeding", "gastrointestinal hemorrhage"},
		recommendation:  "avoid combination unless clearly indicated; use gastroprotection",
		monitoring:      "INR, hemoglobin, signs of bleeding",
	},
	{classAnticoagulant, classNSAID}: {
		severity:        model.SeverityHigh,
		mechanism:       "platelet inhibition and gastric mucosal injury on top of anticoagulation",
		clinicalEffects: []string{"gastrointestinal bleeding", "prolonged bleeding time"},
		recommendation:  "prefer paracetamol for analgesia; if unavoidable add a proton pump inhibitor",
		monitoring:      "INR, renal function, stool occult blood",
	},
	{classAnticoagulant, classSSRI}: {
		severity:        model.SeverityModerate,
		mechanism:       "SSRI-induced platelet serotonin depletion adds to anticoagulant effect",
		clinicalEffects: []string{"increased bleeding risk"},
		recommendation:  "monitor closely; consider gastroprotection in high-risk patients",
		monitoring:      "INR, signs of bruising or bleeding",
	},
	{classAntiplatelet, classNSAID}: {
		severity:        model.SeverityModerate,
		mechanism:       "competing COX-1 inhibition and additive antiplatelet effect",
		clinicalEffects: []string{"reduced cardioprotection", "gastrointestinal irritation"},
		recommendation:  "separate dosing; take the NSAID at least 2 hours after aspirin",
		monitoring:      "dyspepsia, signs of gastrointestinal bleeding",
	},
	{classAntiplatelet, classPPI}: {
		severity:        model.SeverityModerate,
		mechanism:       "CYP2C19 inhibition can reduce activation of clopidogrel",
		clinicalEffects: []string{"reduced antiplatelet efficacy"},
		recommendation:  "prefer pantoprazole over omeprazole with clopidogrel",
		monitoring:      "cardiovascular events",
	},
	{classMacrolide, classStatin}: {
		severity:        model.SeveritySevere,
		mechanism:       "CYP3A4 inhibition raises statin plasma concentration",
		clinicalEffects: []string{"myopathy", "rhabdomyolysis", "acute kidney injury"},
		recommendation:  "suspend the statin during the macrolide course or switch to azithromycin",
		monitoring:      "creatine kinase, muscle pain, renal function",
	},
	{classACEInhibitor, classDiuretic}: {
		severity:        model.SeverityHigh,
		mechanism:       "dual reduction of renal potassium excretion",
		clinicalEffects: []string{"hyperkalemia", "cardiac arrhythmia"},
		recommendation:  "avoid routine combination; if required use the lowest diuretic dose",
		monitoring:      "serum potassium, renal function, ECG",
	},
	{classACEInhibitor, classNSAID}: {
		severity:        model.SeverityModerate,
		mechanism:       "NSAID prostaglandin inhibition blunts renal perfusion and antihypertensive effect",
		clinicalEffects: []string{"reduced blood pressure control", "acute kidney injury in volume depletion"},
		recommendation:  "limit NSAID duration; keep the patient hydrated",
		monitoring:      "blood pressure, serum creatinine",
	},
	{classOpioid, classSSRI}: {
		severity:        model.SeverityHigh,
		mechanism:       "additive serotonergic activity",
		clinicalEffects: []string{"serotonin syndrome", "seizure threshold reduction"},
		recommendation:  "avoid tramadol with SSRIs; choose a non-serotonergic analgesic",
		monitoring:      "agitation, hyperthermia, clonus",
	},
}

// classOf returns the pharmacological class for a medication name, or "".
func classOf(name string) string {
	return drugClasses[strings.ToLower(strings.TrimSpace(name))]
}

// classRuleFor looks up the interaction rule for two medication names.
func classRuleFor(name1, name2 string) (classRule, bool) {
	c1, c2 := classOf(name1), classOf(name2)
	if c1 == "" || c2 == "" {
		return classRule{}, false
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	rule, ok := classRules[classPair{c1, c2}]
	return rule, ok
}

// severityScore converts a severity level to its numeric score.
func severityScore(severity string) int {
	switch severity {
	case model.SeverityLow:
		return 1
	case model.SeverityModerate:
		return 2
	case model.SeverityHigh:
		return 3
	case model.SeveritySevere:
		return 4
	}
	return 0
}

// maxSeverity returns the more serious of two severity levels.
func maxSeverity(a, b string) string {
	if severityScore(b) > severityScore(a) {
		return b
	}
	return a
}

// severityBreakdown counts findings per severity level.
func severityBreakdown(findings []model.InteractionFinding) model.SeverityBreakdown {
	var b model.SeverityBreakdown
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityLow:
			b.Low++
		case model.SeverityModerate:
			b.Moderate++
		case model.SeverityHigh:
			b.High++
		case model.SeveritySevere:
			b.Severe++
		}
	}
	return b
}

// sideEffects lists typical adverse effects per pharmacological class.
var sideEffects = map[string]struct {
	common  []string
	serious []string
}{
	classAnticoagulant: {
		common:  []string{"bruising", "minor bleeding"},
		serious: []string{"major hemorrhage", "intracranial bleeding"},
	},
	classAntiplatelet: {
		common:  []string{"dyspepsia", "bruising"},
		serious: []string{"gastrointestinal bleeding"},
	},
	classNSAID: {
		common:  []string{"heartburn", "nausea", "fluid retention"},
		serious: []string{"gastrointestinal ulcer", "renal impairment"},
	},
	classStatin: {
		common:  []string{"muscle aches", "headache"},
		serious: []string{"rhabdomyolysis", "hepatotoxicity"},
	},
	classMacrolide: {
		common:  []string{"nausea", "diarrhea", "taste disturbance"},
		serious: []string{"QT prolongation", "hepatotoxicity"},
	},
	classACEInhibitor: {
		common:  []string{"dry cough", "dizziness"},
		serious: []string{"angioedema", "hyperkalemia"},
	},
	classDiuretic: {
		common:  []string{"increased urination", "dizziness"},
		serious: []string{"hyperkalemia", "dehydration"},
	},
	classSSRI: {
		common:  []string{"nausea", "insomnia", "fatigue"},
		serious: []string{"serotonin syndrome", "hyponatremia"},
	},
	classOpioid: {
		common:  []string{"drowsiness", "constipation", "nausea"},
		serious: []string{"respiratory depression", "dependence"},
	},
	classBiguanide: {
		common:  []string{"gastrointestinal upset", "metallic taste"},
		serious: []string{"lactic acidosis", "vitamin B12 deficiency"},
	},
	classBetaBlocker: {
		common:  []string{"fatigue", "cold extremities"},
		serious: []string{"bradycardia", "bronchospasm"},
	},
	classPPI: {
		common:  []string{"headache", "abdominal pain"},
		serious: []string{"hypomagnesemia", "C. difficile infection"},
	},
}

// sideEffectsFor returns the catalog entry for a medication name.
func sideEffectsFor(name string) (common, serious []string, ok bool) {
	entry, ok := sideEffects[classOf(name)]
	if !ok {
		return nil, nil, false
	}
	return entry.common, entry.serious, true
}
