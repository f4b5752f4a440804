package validation

// TextTileConfig is the text-tiling clip finder configuration in the shape
// the pipeline consumes.
type TextTileConfig struct {
	CutoffPolicy                   string  `json:"cutoff_policy"`
	EmbeddingAggregationPoolMethod string  `json:"embedding_aggregation_pool_method"`
	MaxClipDurationSecs            float64 `json:"max_clip_duration_secs"`
	MinClipDurationSecs            float64 `json:"min_clip_duration_secs"`
	SmoothingWidth                 int     `json:"smoothing_width"`
	WindowComparePoolMethod        string  `json:"window_compare_pool_method"`
}

// TranscriberConfig is the transcriber configuration in the shape the
// pipeline consumes. Nil fields are left for the transcriber to choose.
type TranscriberConfig struct {
	Language  string  `json:"language"`
	ModelSize *string `json:"model_size"`
	Precision *string `json:"precision"`
}

// ClipInput is a validated clip call.
type ClipInput struct {
	MediaFilePath string         `json:"media_file_path"`
	ComputeDevice *string        `json:"compute_device"`
	TextTile      TextTileConfig `json:"texttile_config"`
}

// TranscribeClipRequest is a validated transcribe-and-clip request.
type TranscribeClipRequest struct {
	ClipInput
	Transcriber TranscriberConfig `json:"transcriber_config"`
}

func decodeClipInput(data Params) ClipInput {
	return ClipInput{
		MediaFilePath: data[FieldMediaFilePath].(string),
		ComputeDevice: asOptionalString(data[FieldComputeDevice]),
		TextTile: TextTileConfig{
			CutoffPolicy:                   data[FieldCutoffPolicy].(string),
			EmbeddingAggregationPoolMethod: data[FieldEmbeddingAggregationPoolMethod].(string),
			MaxClipDurationSecs:            asFloat(data[FieldMaxClipTime]),
			MinClipDurationSecs:            asFloat(data[FieldMinClipTime]),
			SmoothingWidth:                 asInt(data[FieldSmoothingWidth]),
			WindowComparePoolMethod:        data[FieldWindowComparePoolMethod].(string),
		},
	}
}

func decodeTranscribeClipRequest(data Params) TranscribeClipRequest {
	return TranscribeClipRequest{
		ClipInput: decodeClipInput(data),
		Transcriber: TranscriberConfig{
			Language:  data[FieldLanguageCode].(string),
			ModelSize: asOptionalString(data[FieldWhisperModelSize]),
			Precision: asOptionalString(data[FieldPrecision]),
		},
	}
}
