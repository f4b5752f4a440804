package validation

import (
	"golang.org/x/text/language"
)

// Transcriber sub-configuration keys.
const (
	keyLanguage  = "language"
	keyModelSize = "model_size"
	keyPrecision = "precision"
)

// whisperLanguages holds the language codes Whisper models can transcribe.
var whisperLanguages = map[string]struct{}{
	"en": {}, "zh": {}, "de": {}, "es": {}, "ru": {}, "ko": {}, "fr": {}, "ja": {},
	"pt": {}, "tr": {}, "pl": {}, "ca": {}, "nl": {}, "ar": {}, "sv": {}, "it": {},
	"id": {}, "hi": {}, "fi": {}, "vi": {}, "he": {}, "uk": {}, "el": {}, "ms": {},
	"cs": {}, "ro": {}, "da": {}, "hu": {}, "ta": {}, "no": {}, "th": {}, "ur": {},
	"hr": {}, "bg": {}, "lt": {}, "la": {}, "mi": {}, "ml": {}, "cy": {}, "sk": {},
	"te": {}, "fa": {}, "lv": {}, "bn": {}, "sr": {}, "az": {}, "sl": {}, "kn": {},
	"et": {}, "mk": {}, "br": {}, "eu": {}, "is": {}, "hy": {}, "ne": {}, "mn": {},
	"bs": {}, "kk": {}, "sq": {}, "sw": {}, "gl": {}, "mr": {}, "pa": {}, "si": {},
	"km": {}, "sn": {}, "yo": {}, "so": {}, "af": {}, "oc": {}, "ka": {}, "be": {},
	"tg": {}, "sd": {}, "gu": {}, "am": {}, "yi": {}, "lo": {}, "uz": {}, "fo": {},
	"ht": {}, "ps": {}, "tk": {}, "nn": {}, "mt": {}, "sa": {}, "lb": {}, "my": {},
	"bo": {}, "tl": {}, "mg": {}, "as": {}, "tt": {}, "haw": {}, "ln": {}, "ha": {},
	"ba": {}, "jw": {}, "su": {}, "yue": {},
}

// Whisper checkpoints accepted as model_size.
var whisperModelSizes = []string{
	"tiny", "tiny.en",
	"base", "base.en",
	"small", "small.en",
	"medium", "medium.en",
	"large-v1", "large-v2", "large-v3", "large-v3-turbo",
}

// Compute types the CTranslate2 backend runs in.
var transcriberPrecisions = []string{"float16", "float32", "int8"}

var transcriberConfigTypes = []FieldSpec{
	{Name: keyLanguage, Kinds: []Kind{KindString}},
	{Name: keyModelSize, Kinds: []Kind{KindString, KindNull}},
	{Name: keyPrecision, Kinds: []Kind{KindString, KindNull}},
}

var transcriberConfigDefaults = Params{
	keyLanguage:  "en",
	keyModelSize: nil,
	keyPrecision: nil,
}

// TranscriberConfigManager validates the configuration handed to the
// WhisperX transcriber. A null model_size or precision lets the transcriber
// pick one for the compute device at hand.
type TranscriberConfigManager struct{}

// CheckValidConfig returns the first constraint cfg violates, or nil.
func (TranscriberConfigManager) CheckValidConfig(cfg Params) error {
	if err := CheckExistenceAndTypes(cfg, transcriberConfigTypes, "transcriber config"); err != nil {
		return err
	}

	if err := checkLanguage(cfg[keyLanguage].(string)); err != nil {
		return err
	}

	if size, ok := cfg[keyModelSize].(string); ok {
		if err := checkEnum(keyModelSize, size, whisperModelSizes); err != nil {
			return err
		}
	}

	if precision, ok := cfg[keyPrecision].(string); ok {
		if err := checkEnum(keyPrecision, precision, transcriberPrecisions); err != nil {
			return err
		}
	}

	return nil
}

// ImputeDefaultConfig fills in every missing key of cfg with its default.
func (TranscriberConfigManager) ImputeDefaultConfig(cfg Params) Params {
	return imputeDefaults(cfg, transcriberConfigDefaults)
}

func checkLanguage(code string) error {
	if _, ok := whisperLanguages[code]; ok {
		return nil
	}
	if _, err := language.ParseBase(code); err != nil {
		return newError(InvalidEnumValue, keyLanguage,
			"%s must be an ISO 639 language code such as 'en'. Received: '%s'", keyLanguage, code)
	}
	return newError(InvalidEnumValue, keyLanguage,
		"%s '%s' is not supported by the transcriber", keyLanguage, code)
}
