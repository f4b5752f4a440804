package validation

import (
	"fmt"
	"slices"
	"strings"
)

// Cutoff policies decide how dissimilar adjacent windows must be before a
// segment boundary is placed between them.
const (
	CutoffPolicyAverage = "average"
	CutoffPolicyHigh    = "high"
	CutoffPolicyLow     = "low"
)

// Pooling methods for window comparison and segment aggregation.
const (
	PoolMethodMean = "mean"
	PoolMethodMax  = "max"
)

// Text-tiling sub-configuration keys.
const (
	keyCutoffPolicy                   = "cutoff_policy"
	keyEmbeddingAggregationPoolMethod = "embedding_aggregation_pool_method"
	keyMaxClipDurationSecs            = "max_clip_duration_secs"
	keyMinClipDurationSecs            = "min_clip_duration_secs"
	keySmoothingWidth                 = "smoothing_width"
	keyWindowComparePoolMethod        = "window_compare_pool_method"
	keyK                              = "k"
)

const minTextTileK = 2

var (
	cutoffPolicies = []string{CutoffPolicyAverage, CutoffPolicyHigh, CutoffPolicyLow}
	poolMethods    = []string{PoolMethodMean, PoolMethodMax}
)

var textTileConfigTypes = []FieldSpec{
	{Name: keyCutoffPolicy, Kinds: []Kind{KindString}},
	{Name: keyEmbeddingAggregationPoolMethod, Kinds: []Kind{KindString}},
	{Name: keyMaxClipDurationSecs, Kinds: []Kind{KindFloat, KindInt}},
	{Name: keyMinClipDurationSecs, Kinds: []Kind{KindFloat, KindInt}},
	{Name: keySmoothingWidth, Kinds: []Kind{KindInt}},
	{Name: keyWindowComparePoolMethod, Kinds: []Kind{KindString}},
	{Name: keyK, Kinds: []Kind{KindInt}, Optional: true},
}

var textTileConfigDefaults = Params{
	keyCutoffPolicy:                   CutoffPolicyHigh,
	keyEmbeddingAggregationPoolMethod: PoolMethodMax,
	keyMaxClipDurationSecs:            900,
	keyMinClipDurationSecs:            15,
	keySmoothingWidth:                 3,
	keyWindowComparePoolMethod:        PoolMethodMean,
	keyK:                              7,
}

// TextTileConfigManager validates the configuration handed to the
// text-tiling clip finder.
type TextTileConfigManager struct{}

// CheckValidConfig returns the first constraint cfg violates, or nil.
func (TextTileConfigManager) CheckValidConfig(cfg Params) error {
	if err := CheckExistenceAndTypes(cfg, textTileConfigTypes, "text-tiling config"); err != nil {
		return err
	}

	if err := checkEnum(keyCutoffPolicy, cfg[keyCutoffPolicy].(string), cutoffPolicies); err != nil {
		return err
	}
	if err := checkEnum(keyWindowComparePoolMethod, cfg[keyWindowComparePoolMethod].(string), poolMethods); err != nil {
		return err
	}
	if err := checkEnum(keyEmbeddingAggregationPoolMethod, cfg[keyEmbeddingAggregationPoolMethod].(string), poolMethods); err != nil {
		return err
	}

	minSecs := asFloat(cfg[keyMinClipDurationSecs])
	maxSecs := asFloat(cfg[keyMaxClipDurationSecs])
	if minSecs < 0 {
		return newError(InvalidNumericRange, keyMinClipDurationSecs,
			"%s must be greater than or equal to 0. Received: %v", keyMinClipDurationSecs, cfg[keyMinClipDurationSecs])
	}
	if minSecs > maxSecs {
		return newError(InvalidNumericRange, keyMinClipDurationSecs,
			"%s (%v) must be less than or equal to %s (%v)",
			keyMinClipDurationSecs, cfg[keyMinClipDurationSecs], keyMaxClipDurationSecs, cfg[keyMaxClipDurationSecs])
	}

	if width := asInt(cfg[keySmoothingWidth]); width < 0 {
		return newError(InvalidNumericRange, keySmoothingWidth,
			"%s must be greater than or equal to 0. Received: %d", keySmoothingWidth, width)
	}

	if k, ok := cfg[keyK]; ok && asInt(k) < minTextTileK {
		return newError(InvalidNumericRange, keyK,
			"%s must be greater than or equal to %d. Received: %d", keyK, minTextTileK, asInt(k))
	}

	return nil
}

// ImputeDefaultConfig fills in every missing key of cfg with its default.
func (TextTileConfigManager) ImputeDefaultConfig(cfg Params) Params {
	return imputeDefaults(cfg, textTileConfigDefaults)
}

func checkEnum(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = fmt.Sprintf("'%s'", a)
	}
	return newError(InvalidEnumValue, field,
		"%s must be one of %s. Received: '%s'", field, strings.Join(quoted, ", "), value)
}
