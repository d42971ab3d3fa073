package lexicon

// DefaultTerms returns a fresh copy of the built-in term lists.
func DefaultTerms() Terms {
	return Terms{
		Positive: []string{
			"good", "great", "excellent", "positive", "growth", "improve", "success",
			"achieve", "benefit", "gain", "profit", "innovation", "progress", "advance",
			"sustainable", "efficient", "reduce", "save", "clean", "green", "renewable",
			"commitment", "initiative", "leadership", "responsibility", "transparency",
			"diversity", "inclusion", "community", "investment", "opportunity", "award",
			"recognition", "milestone", "breakthrough", "partnership", "collaboration",
		},
		Negative: []string{
			"bad", "poor", "negative", "decline", "loss", "fail", "failure", "risk",
			"concern", "problem", "issue", "challenge", "violation", "scandal", "lawsuit",
			"pollution", "emission", "waste", "damage", "harm", "controversy", "criticism",
			"fine", "penalty", "breach", "misconduct", "fraud", "corruption", "layoff",
			"downturn", "recession", "crisis", "disaster", "accident", "spill", "leak",
		},
		Environmental: []string{
			"climate", "carbon", "emissions", "renewable", "sustainability", "green",
			"environmental", "pollution", "energy", "waste", "recycling", "solar",
			"wind", "biodiversity", "conservation", "eco", "footprint", "neutral",
			"water", "air", "forest", "deforestation", "plastic", "electric", "clean",
		},
		Social: []string{
			"social", "diversity", "equality", "labor", "human rights", "community",
			"employee", "workplace", "safety", "health", "inclusion", "equity",
			"workers", "training", "education", "welfare", "fair", "discrimination",
			"harassment", "supply chain", "stakeholder", "philanthropy", "volunteer",
		},
		Governance: []string{
			"governance", "ethics", "compliance", "transparency", "board", "leadership",
			"accountability", "audit", "regulation", "policy", "executive", "shareholder",
			"voting", "compensation", "disclosure", "oversight", "independent", "risk",
			"management", "integrity", "corporate", "fiduciary", "stewardship",
		},
		Generic: []string{"esg", "sustainable", "responsibility", "stakeholder"},
	}
}
