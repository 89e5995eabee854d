package domain

// TranslationPatch carries incoming French values for a two-sided merge.
// Zero-valued fields are treated as "not supplied".
type TranslationPatch struct {
	NameFR        string
	StepsFR       []string
	IngredientsFR []Ingredient
}

// MergeOutcome explains what happened to one field during a translation merge.
type MergeOutcome string

const (
	// OutcomeMerged: the field was empty, its English counterpart present,
	// and the incoming value was applied.
	OutcomeMerged MergeOutcome = "merged"
	// OutcomeEmpty: no incoming value was supplied for the field.
	OutcomeEmpty MergeOutcome = "empty"
	// OutcomeAlreadyTranslated: the field already holds a value; translation
	// is monotone, so the incoming value is discarded.
	OutcomeAlreadyTranslated MergeOutcome = "already_translated"
	// OutcomeMissingSource: the English counterpart is absent, so there is
	// nothing to translate against.
	OutcomeMissingSource MergeOutcome = "missing_source"
	// OutcomeLengthMismatch: ingredientsFR must line up one-to-one with
	// ingredients; a mismatched count is dropped without error.
	OutcomeLengthMismatch MergeOutcome = "length_mismatch"
)

// TranslationReport records the per-field outcome of a merge. Rejected fields
// are reported here rather than surfaced as request errors.
type TranslationReport struct {
	NameFR        MergeOutcome `json:"nameFR"`
	StepsFR       MergeOutcome `json:"stepsFR"`
	IngredientsFR MergeOutcome `json:"ingredientsFR"`
}

// Changed reports whether any field was actually merged.
func (t TranslationReport) Changed() bool {
	return t.NameFR == OutcomeMerged || t.StepsFR == OutcomeMerged || t.IngredientsFR == OutcomeMerged
}

// ApplyTranslation merges patch into the recipe. Each field transitions at
// most once from empty to filled; values that fail a precondition are
// silently dropped and only reflected in the returned report.
func (r *Recipe) ApplyTranslation(patch TranslationPatch) TranslationReport {
	report := TranslationReport{
		NameFR:        OutcomeEmpty,
		StepsFR:       OutcomeEmpty,
		IngredientsFR: OutcomeEmpty,
	}

	if patch.NameFR != "" {
		switch {
		case r.NameFR != "":
			report.NameFR = OutcomeAlreadyTranslated
		case r.Name == "":
			report.NameFR = OutcomeMissingSource
		default:
			r.NameFR = patch.NameFR
			report.NameFR = OutcomeMerged
		}
	}

	if len(patch.StepsFR) > 0 {
		switch {
		case len(r.StepsFR) > 0:
			report.StepsFR = OutcomeAlreadyTranslated
		case len(r.Steps) == 0:
			report.StepsFR = OutcomeMissingSource
		default:
			r.StepsFR = append([]string(nil), patch.StepsFR...)
			report.StepsFR = OutcomeMerged
		}
	}

	if len(patch.IngredientsFR) > 0 {
		switch {
		case len(r.IngredientsFR) > 0:
			report.IngredientsFR = OutcomeAlreadyTranslated
		case len(r.Ingredients) == 0:
			report.IngredientsFR = OutcomeMissingSource
		case len(patch.IngredientsFR) != len(r.Ingredients):
			report.IngredientsFR = OutcomeLengthMismatch
		default:
			r.IngredientsFR = append([]Ingredient(nil), patch.IngredientsFR...)
			report.IngredientsFR = OutcomeMerged
		}
	}

	return report
}
