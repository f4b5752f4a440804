package validation

// Parameter keys only the transcribe-and-clip request carries.
const (
	FieldPrecision        = "precision"
	FieldLanguageCode     = "languageCode"
	FieldWhisperModelSize = "whisperModelSize"
)

var requestFieldTypes = []FieldSpec{
	{Name: FieldMediaFilePath, Kinds: []Kind{KindString}},
	{Name: FieldComputeDevice, Kinds: []Kind{KindString, KindNull}},
	{Name: FieldPrecision, Kinds: []Kind{KindString, KindNull}},
	{Name: FieldLanguageCode, Kinds: []Kind{KindString}},
	{Name: FieldWhisperModelSize, Kinds: []Kind{KindString, KindNull}},
	{Name: FieldCutoffPolicy, Kinds: []Kind{KindString}},
	{Name: FieldEmbeddingAggregationPoolMethod, Kinds: []Kind{KindString}},
	{Name: FieldMinClipTime, Kinds: []Kind{KindFloat, KindInt}},
	{Name: FieldMaxClipTime, Kinds: []Kind{KindFloat, KindInt}},
	{Name: FieldSmoothingWidth, Kinds: []Kind{KindInt}},
	{Name: FieldWindowComparePoolMethod, Kinds: []Kind{KindString}},
}

var requestFieldDefaults = Params{
	FieldPrecision:        nil,
	FieldLanguageCode:     "en",
	FieldWhisperModelSize: nil,
}

// TranscribeClipRequestValidator validates a transcribe-and-clip API
// request: everything a clip input carries plus the transcriber settings.
type TranscribeClipRequestValidator struct{}

// CheckValidRequestData returns nil if data is valid, or an error describing
// the first problem found.
func (TranscribeClipRequestValidator) CheckValidRequestData(data Params) error {
	if err := CheckExistenceAndTypes(data, requestFieldTypes, "request data"); err != nil {
		return err
	}
	if err := checkClipFields(data); err != nil {
		return err
	}
	if err := (TranscriberConfigManager{}).CheckValidConfig(transcriberConfigFrom(data)); err != nil {
		return err
	}
	return TextTileConfigManager{}.CheckValidConfig(textTileConfigFrom(data))
}

// ImputeRequestDataDefaults adds defaults for optional fields missing from
// data and returns data.
func (TranscribeClipRequestValidator) ImputeRequestDataDefaults(data Params) Params {
	imputeDefaults(data, clipFieldDefaults)
	return imputeDefaults(data, requestFieldDefaults)
}

// Parse imputes defaults into data, validates it and decodes the result.
func (v TranscribeClipRequestValidator) Parse(data Params) (*TranscribeClipRequest, error) {
	v.ImputeRequestDataDefaults(data)
	if err := v.CheckValidRequestData(data); err != nil {
		return nil, err
	}
	req := decodeTranscribeClipRequest(data)
	return &req, nil
}

func transcriberConfigFrom(data Params) Params {
	return Params{
		keyLanguage:  data[FieldLanguageCode],
		keyModelSize: data[FieldWhisperModelSize],
		keyPrecision: data[FieldPrecision],
	}
}
