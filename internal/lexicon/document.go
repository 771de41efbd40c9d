package lexicon

// document mirrors the YAML analysis document. Required numeric values are
// pointers so a missing key can be told apart from an explicit zero.
type document struct {
	Version            int                   `yaml:"version"`
	Thresholds         *thresholdsDoc        `yaml:"thresholds"`
	AmbiguityThreshold *float64              `yaml:"ambiguity_threshold"`
	ScoreScale         *float64              `yaml:"score_scale"`
	MaxInputRunes      int                   `yaml:"max_input_runes"`
	ContextWeights     *contextWeightsDoc    `yaml:"context_weights"`
	NegationWindow     *int                  `yaml:"negation_window"`
	NegationMarkers    []string              `yaml:"negation_markers"`
	IntensityWords     map[string]float64    `yaml:"intensity_words"`
	POSWeights         map[string]float64    `yaml:"pos_weights"`
	SentenceMarkers    *sentenceMarkersDoc   `yaml:"sentence_markers"`
	Feel               *feelDoc              `yaml:"feel"`
	StructurePatterns  map[string]string     `yaml:"structure_patterns"`
	EmotionPatterns    []emotionPatternDoc   `yaml:"emotion_patterns"`
	Quality            *qualityDoc           `yaml:"quality"`
	Lexicon            map[string][]groupDoc `yaml:"lexicon"`
}

type thresholdsDoc struct {
	High   *float64 `yaml:"high"`
	Medium *float64 `yaml:"medium"`
	Low    *float64 `yaml:"low"`
}

type contextWeightsDoc struct {
	SentenceTypeMatchBonus      *float64 `yaml:"sentence_type_match_bonus"`
	SentenceTypeMismatchPenalty *float64 `yaml:"sentence_type_mismatch_penalty"`
	NegationPenalty             *float64 `yaml:"negation_penalty"`
	EmphasisBonus               *float64 `yaml:"emphasis_bonus"`
	MultipleKeywordBonus        *float64 `yaml:"multiple_keyword_bonus"`
}

type sentenceMarkersDoc struct {
	Subject           []string `yaml:"subject"`
	Object            []string `yaml:"object"`
	PredicateSuffixes []string `yaml:"predicate_suffixes"`
	FinalParticles    []string `yaml:"final_particles"`
}

type feelDoc struct {
	ExclamationIncrement *float64 `yaml:"exclamation_increment"`
	MaxRun               *int     `yaml:"max_run"`
	ExpressionIncrement  *float64 `yaml:"expression_increment"`
	Ceiling              *float64 `yaml:"ceiling"`
	Expressions          []string `yaml:"expressions"`
}

type emotionPatternDoc struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
	Feel  bool     `yaml:"feel"`
}

type qualityDoc struct {
	ShortBelow   *int              `yaml:"short_below"`
	LongAbove    *int              `yaml:"long_above"`
	MixedCut     *float64          `yaml:"mixed_cut"`
	MixedCount   *int              `yaml:"mixed_count"`
	VeryLowBelow *float64          `yaml:"very_low_below"`
	Suggestions  map[string]string `yaml:"suggestions"`
}

type groupDoc struct {
	Group    string   `yaml:"group"`
	Weight   *float64 `yaml:"weight"`
	POS      string   `yaml:"pos"`
	Keywords []string `yaml:"keywords"`
}
