package service

import "github.com/pharmalytics/nexus-go/internal/model"

// seedSet is the bundled slice of a reference dataset. Real deployments point
// the importer at licensed dataset exports; these records keep the catalog
// usable out of the box.
type seedSet struct {
	drugs        []model.Drug
	interactions []model.DrugInteraction
}

var seedCatalog = map[string]seedSet{
	model.SourceDrugBank: {
		drugs: []model.Drug{
			{
				DrugID:            "DB00682",
				Name:              "Warfarin",
				GenericName:       "warfarin sodium",
				BrandNames:        []string{"Coumadin", "Jantoven"},
				DrugClass:         "vitamin K antagonist",
				MechanismOfAction: "inhibits vitamin K epoxide reductase, impairing synthesis of clotting factors II, VII, IX and X",
				Indications:       []string{"venous thromboembolism", "atrial fibrillation", "mechanical heart valves"},
				Contraindications: []string{"active bleeding", "pregnancy", "severe hepatic disease"},
				DosageForms:       []string{"tablet"},
			},
			{
				DrugID:            "DB00945",
				Name:              "Aspirin",
				GenericName:       "acetylsalicylic acid",
				BrandNames:        []string{"Bayer", "Ecotrin"},
				DrugClass:         "antiplatelet agent",
				MechanismOfAction: "irreversibly inhibits COX-1, blocking thromboxane A2 synthesis",
				Indications:       []string{"secondary cardiovascular prevention", "pain", "fever"},
				Contraindications: []string{"active peptic ulcer", "children with viral illness"},
				DosageForms:       []string{"tablet", "enteric-coated tablet"},
			},
			{
				DrugID:            "DB01050",
				Name:              "Ibuprofen",
				GenericName:       "ibuprofen",
				BrandNames:        []string{"Advil", "Motrin"},
				DrugClass:         "nonsteroidal anti-inflammatory drug",
				MechanismOfAction: "reversible COX-1 and COX-2 inhibition reducing prostaglandin synthesis",
				Indications:       []string{"pain", "inflammation", "fever"},
				Contraindications: []string{"active gastrointestinal bleeding", "severe renal impairment"},
				DosageForms:       []string{"tablet", "suspension"},
			},
			{
				DrugID:            "DB00641",
				Name:              "Simvastatin",
				GenericName:       "simvastatin",
				BrandNames:        []string{"Zocor"},
				DrugClass:         "HMG-CoA reductase inhibitor",
				MechanismOfAction: "inhibits HMG-CoA reductase, the rate-limiting step of cholesterol synthesis",
				Indications:       []string{"hypercholesterolemia", "cardiovascular risk reduction"},
				Contraindications: []string{"active liver disease", "pregnancy"},
				DosageForms:       []string{"tablet"},
			},
			{
				DrugID:            "DB01211",
				Name:              "Clarithromycin",
				GenericName:       "clarithromycin",
				BrandNames:        []string{"Biaxin"},
				DrugClass:         "macrolide antibiotic",
				MechanismOfAction: "binds the 50S ribosomal subunit, inhibiting bacterial protein synthesis",
				Indications:       []string{"respiratory tract infections", "H. pylori eradication"},
				Contraindications: []string{"history of QT prolongation", "concurrent strong CYP3A4 substrates"},
				DosageForms:       []string{"tablet", "suspension"},
			},
			{
				DrugID:            "DB00722",
				Name:              "Lisinopril",
				GenericName:       "lisinopril",
				BrandNames:        []string{"Prinivil", "Zestril"},
				DrugClass:         "ACE inhibitor",
				MechanismOfAction: "inhibits angiotensin-converting enzyme, reducing angiotensin II formation",
				Indications:       []string{"hypertension", "heart failure", "post-myocardial infarction"},
				Contraindications: []string{"history of angioedema", "pregnancy", "bilateral renal artery stenosis"},
				DosageForms:       []string{"tablet"},
			},
		},
		interactions: []model.DrugInteraction{
			{
				Drug1Name:                 "Warfarin",
				Drug2Name:                 "Aspirin",
				Severity:                  model.SeverityHigh,
				Description:               "Concurrent use substantially increases the risk of major bleeding.",
				Mechanism:                 "additive anticoagulant and antiplatelet effects",
				ClinicalEffects:           []string{"major bleeding", "gastrointestinal hemorrhage"},
				ManagementRecommendations: "Avoid unless clearly indicated; monitor INR closely and add gastroprotection.",
				EvidenceLevel:             "established",
			},
			{
				Drug1Name:                 "Warfarin",
				Drug2Name:                 "Ibuprofen",
				Severity:                  model.SeverityHigh,
				Description:               "NSAIDs raise bleeding risk and may displace warfarin from plasma proteins.",
				Mechanism:                 "platelet inhibition, gastric mucosal injury and protein binding displacement",
				ClinicalEffects:           []string{"gastrointestinal bleeding", "elevated INR"},
				ManagementRecommendations: "Prefer paracetamol; if unavoidable, use the lowest NSAID dose with a PPI.",
				EvidenceLevel:             "established",
			},
			{
				Drug1Name:                 "Simvastatin",
				Drug2Name:                 "Clarithromycin",
				Severity:                  model.SeveritySevere,
				Description:               "Clarithromycin markedly raises simvastatin exposure.",
				Mechanism:                 "CYP3A4 inhibition",
				ClinicalEffects:           []string{"myopathy", "rhabdomyolysis"},
				ManagementRecommendations: "Suspend simvastatin during clarithromycin therapy or switch to azithromycin.",
				EvidenceLevel:             "established",
			},
			{
				Drug1Name:                 "Lisinopril",
				Drug2Name:                 "Ibuprofen",
				Severity:                  model.SeverityModerate,
				Description:               "NSAIDs blunt the antihypertensive effect and can impair renal function.",
				Mechanism:                 "prostaglandin-mediated reduction of renal perfusion",
				ClinicalEffects:           []string{"reduced blood pressure control", "acute kidney injury"},
				ManagementRecommendations: "Limit NSAID duration; monitor blood pressure and creatinine.",
				EvidenceLevel:             "probable",
			},
		},
	},
	model.SourceFDA: {
		drugs: []model.Drug{
			{
				DrugID:            "FDA-0412",
				Name:              "Metformin",
				GenericName:       "metformin hydrochloride",
				BrandNames:        []string{"Glucophage"},
				DrugClass:         "biguanide",
				MechanismOfAction: "decreases hepatic glucose production and improves insulin sensitivity",
				Indications:       []string{"type 2 diabetes mellitus"},
				Contraindications: []string{"eGFR below 30", "metabolic acidosis"},
				DosageForms:       []string{"tablet", "extended-release tablet"},
			},
			{
				DrugID:            "FDA-1187",
				Name:              "Tramadol",
				GenericName:       "tramadol hydrochloride",
				BrandNames:        []string{"Ultram"},
				DrugClass:         "opioid analgesic",
				MechanismOfAction: "mu-opioid agonism with serotonin and norepinephrine reuptake inhibition",
				Indications:       []string{"moderate pain"},
				Contraindications: []string{"seizure disorder", "concurrent MAO inhibitors"},
				DosageForms:       []string{"tablet", "extended-release tablet"},
			},
			{
				DrugID:            "FDA-0933",
				Name:              "Fluoxetine",
				GenericName:       "fluoxetine hydrochloride",
				BrandNames:        []string{"Prozac"},
				DrugClass:         "selective serotonin reuptake inhibitor",
				MechanismOfAction: "inhibits neuronal serotonin reuptake",
				Indications:       []string{"major depressive disorder", "obsessive-compulsive disorder"},
				Contraindications: []string{"concurrent MAO inhibitors", "pimozide therapy"},
				DosageForms:       []string{"capsule", "solution"},
			},
		},
		interactions: []model.DrugInteraction{
			{
				Drug1Name:                 "Tramadol",
				Drug2Name:                 "Fluoxetine",
				Severity:                  model.SeverityHigh,
				Description:               "Combined serotonergic activity can precipitate serotonin syndrome.",
				Mechanism:                 "additive serotonergic effect and CYP2D6 inhibition",
				ClinicalEffects:           []string{"serotonin syndrome", "reduced tramadol analgesia"},
				ManagementRecommendations: "Avoid the combination; choose a non-serotonergic analgesic.",
				EvidenceLevel:             "established",
			},
		},
	},
	// Each set carries every drug its interactions reference, so a source can
	// be imported on its own. Shared drugs repeat across sets; the catalog
	// upsert keyed by drug_id makes the repetition harmless.
	model.SourceWHO: {
		drugs: []model.Drug{
			{
				DrugID:            "WHO-0051",
				Name:              "Spironolactone",
				GenericName:       "spironolactone",
				BrandNames:        []string{"Aldactone"},
				DrugClass:         "potassium-sparing diuretic",
				MechanismOfAction: "competitive aldosterone receptor antagonism in the distal nephron",
				Indications:       []string{"heart failure", "resistant hypertension", "ascites"},
				Contraindications: []string{"hyperkalemia", "Addison disease"},
				DosageForms:       []string{"tablet"},
			},
			{
				DrugID:            "WHO-0107",
				Name:              "Omeprazole",
				GenericName:       "omeprazole",
				BrandNames:        []string{"Prilosec", "Losec"},
				DrugClass:         "proton pump inhibitor",
				MechanismOfAction: "irreversibly inhibits the gastric H+/K+ ATPase",
				Indications:       []string{"gastroesophageal reflux disease", "peptic ulcer disease"},
				Contraindications: []string{"hypersensitivity to benzimidazoles"},
				DosageForms:       []string{"capsule", "tablet"},
			},
			{
				DrugID:            "DB00722",
				Name:              "Lisinopril",
				GenericName:       "lisinopril",
				BrandNames:        []string{"Prinivil", "Zestril"},
				DrugClass:         "ACE inhibitor",
				MechanismOfAction: "inhibits angiotensin-converting enzyme, reducing angiotensin II formation",
				Indications:       []string{"hypertension", "heart failure", "post-myocardial infarction"},
				Contraindications: []string{"history of angioedema", "pregnancy", "bilateral renal artery stenosis"},
				DosageForms:       []string{"tablet"},
			},
		},
		interactions: []model.DrugInteraction{
			{
				Drug1Name:                 "Lisinopril",
				Drug2Name:                 "Spironolactone",
				Severity:                  model.SeverityHigh,
				Description:               "Dual potassium retention can cause dangerous hyperkalemia.",
				Mechanism:                 "reduced aldosterone activity combined with aldosterone antagonism",
				ClinicalEffects:           []string{"hyperkalemia", "cardiac arrhythmia"},
				ManagementRecommendations: "Monitor serum potassium within one week of starting the combination.",
				EvidenceLevel:             "established",
			},
		},
	},
	model.SourcePharmGKB: {
		drugs: []model.Drug{
			{
				DrugID:            "PA451906",
				Name:              "Clopidogrel",
				GenericName:       "clopidogrel bisulfate",
				BrandNames:        []string{"Plavix"},
				DrugClass:         "P2Y12 inhibitor",
				MechanismOfAction: "prodrug whose active metabolite irreversibly blocks the platelet P2Y12 receptor",
				Indications:       []string{"acute coronary syndrome", "stroke prevention"},
				Contraindications: []string{"active bleeding"},
				DosageForms:       []string{"tablet"},
			},
			{
				DrugID:            "WHO-0107",
				Name:              "Omeprazole",
				GenericName:       "omeprazole",
				BrandNames:        []string{"Prilosec", "Losec"},
				DrugClass:         "proton pump inhibitor",
				MechanismOfAction: "irreversibly inhibits the gastric H+/K+ ATPase",
				Indications:       []string{"gastroesophageal reflux disease", "peptic ulcer disease"},
				Contraindications: []string{"hypersensitivity to benzimidazoles"},
				DosageForms:       []string{"capsule", "tablet"},
			},
		},
		interactions: []model.DrugInteraction{
			{
				Drug1Name:                 "Clopidogrel",
				Drug2Name:                 "Omeprazole",
				Severity:                  model.SeverityModerate,
				Description:               "Omeprazole reduces formation of clopidogrel's active metabolite.",
				Mechanism:                 "CYP2C19 inhibition",
				ClinicalEffects:           []string{"reduced antiplatelet effect"},
				ManagementRecommendations: "Prefer pantoprazole when acid suppression is required.",
				EvidenceLevel:             "probable",
			},
		},
	},
}
