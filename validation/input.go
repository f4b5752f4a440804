package validation

import "strings"

// Parameter keys shared by the clip input and transcribe-and-clip request.
const (
	FieldMediaFilePath                  = "mediaFilePath"
	FieldComputeDevice                  = "computeDevice"
	FieldCutoffPolicy                   = "cutoffPolicy"
	FieldEmbeddingAggregationPoolMethod = "embeddingAggregationPoolMethod"
	FieldMinClipTime                    = "minClipTime"
	FieldMaxClipTime                    = "maxClipTime"
	FieldSmoothingWidth                 = "smoothingWidth"
	FieldWindowComparePoolMethod        = "windowComparePoolMethod"
)

var mediaFileExtensions = []string{".mp3", ".mp4"}

var clipFieldTypes = []FieldSpec{
	{Name: FieldMediaFilePath, Kinds: []Kind{KindString}},
	{Name: FieldComputeDevice, Kinds: []Kind{KindString, KindNull}},
	{Name: FieldCutoffPolicy, Kinds: []Kind{KindString}},
	{Name: FieldEmbeddingAggregationPoolMethod, Kinds: []Kind{KindString}},
	{Name: FieldMinClipTime, Kinds: []Kind{KindFloat, KindInt}},
	{Name: FieldMaxClipTime, Kinds: []Kind{KindFloat, KindInt}},
	{Name: FieldSmoothingWidth, Kinds: []Kind{KindInt}},
	{Name: FieldWindowComparePoolMethod, Kinds: []Kind{KindString}},
}

var clipFieldDefaults = Params{
	FieldComputeDevice:                  nil,
	FieldCutoffPolicy:                   CutoffPolicyHigh,
	FieldEmbeddingAggregationPoolMethod: PoolMethodMax,
	FieldMinClipTime:                    15,
	FieldMaxClipTime:                    900,
	FieldSmoothingWidth:                 3,
	FieldWindowComparePoolMethod:        PoolMethodMean,
}

// ClipInputValidator validates the parameters of a clip call on a local
// media file.
type ClipInputValidator struct{}

// CheckValidInputData returns nil if data is valid, or an error describing
// the first problem found.
func (ClipInputValidator) CheckValidInputData(data Params) error {
	if err := CheckExistenceAndTypes(data, clipFieldTypes, "input data"); err != nil {
		return err
	}
	if err := checkClipFields(data); err != nil {
		return err
	}
	return TextTileConfigManager{}.CheckValidConfig(textTileConfigFrom(data))
}

// ImputeInputDataDefaults adds defaults for optional fields missing from
// data and returns data.
func (ClipInputValidator) ImputeInputDataDefaults(data Params) Params {
	return imputeDefaults(data, clipFieldDefaults)
}

// Parse imputes defaults into data, validates it and decodes the result.
func (v ClipInputValidator) Parse(data Params) (*ClipInput, error) {
	v.ImputeInputDataDefaults(data)
	if err := v.CheckValidInputData(data); err != nil {
		return nil, err
	}
	input := decodeClipInput(data)
	return &input, nil
}

// checkClipFields runs the checks after the type gate that both variants
// share, except for the text-tiling config which runs last.
func checkClipFields(data Params) error {
	if err := checkMediaFilePath(data[FieldMediaFilePath].(string)); err != nil {
		return err
	}

	if device, ok := data[FieldComputeDevice].(string); ok {
		if err := CheckValidTorchDevice(device); err != nil {
			return err
		}
	}

	return nil
}

func checkMediaFilePath(path string) error {
	for _, ext := range mediaFileExtensions {
		if strings.HasSuffix(path, ext) {
			return nil
		}
	}
	return newError(InvalidExtension, FieldMediaFilePath,
		"mediaFilePath must be of type mp3 or mp4. Received: %s", path)
}

// textTileConfigFrom reshapes the clip fields of data into the text-tiling
// sub-configuration.
func textTileConfigFrom(data Params) Params {
	return Params{
		keyCutoffPolicy:                   data[FieldCutoffPolicy],
		keyEmbeddingAggregationPoolMethod: data[FieldEmbeddingAggregationPoolMethod],
		keyMaxClipDurationSecs:            data[FieldMaxClipTime],
		keyMinClipDurationSecs:            data[FieldMinClipTime],
		keySmoothingWidth:                 data[FieldSmoothingWidth],
		keyWindowComparePoolMethod:        data[FieldWindowComparePoolMethod],
	}
}
