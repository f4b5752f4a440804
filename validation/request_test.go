package validation

import (
	"strings"
	"testing"
)

func validRequestData() Params {
	data := validInputData()
	data["languageCode"] = "en"
	data["whisperModelSize"] = nil
	data["precision"] = nil
	return data
}

func TestCheckValidRequestData(t *testing.T) {
	validator := TranscribeClipRequestValidator{}

	tests := []struct {
		name     string
		modify   func(Params)
		wantKind ErrorKind
		wantMsg  string
	}{
		{
			name:   "Valid request",
			modify: func(Params) {},
		},
		{
			name: "Valid request with transcriber settings",
			modify: func(p Params) {
				p["languageCode"] = "fr"
				p["whisperModelSize"] = "large-v2"
				p["precision"] = "int8"
				p["computeDevice"] = "cpu"
			},
		},
		{
			name:     "Missing languageCode",
			modify:   func(p Params) { delete(p, "languageCode") },
			wantKind: MissingField,
			wantMsg:  "languageCode",
		},
		{
			name:     "Null languageCode",
			modify:   func(p Params) { p["languageCode"] = nil },
			wantKind: TypeMismatch,
			wantMsg:  "languageCode",
		},
		{
			name:     "Numeric precision",
			modify:   func(p Params) { p["precision"] = 16 },
			wantKind: TypeMismatch,
			wantMsg:  "precision",
		},
		{
			name:     "Unknown language",
			modify:   func(p Params) { p["languageCode"] = "english" },
			wantKind: InvalidEnumValue,
			wantMsg:  "english",
		},
		{
			name:     "Unknown model size",
			modify:   func(p Params) { p["whisperModelSize"] = "huge" },
			wantKind: InvalidEnumValue,
			wantMsg:  "huge",
		},
		{
			name:     "Unknown precision",
			modify:   func(p Params) { p["precision"] = "float64" },
			wantKind: InvalidEnumValue,
			wantMsg:  "float64",
		},
		{
			name: "Transcriber error wins over clip error",
			modify: func(p Params) {
				p["precision"] = "float64"
				p["minClipTime"] = 2000
			},
			wantKind: InvalidEnumValue,
			wantMsg:  "precision",
		},
		{
			name:     "Clip range error",
			modify:   func(p Params) { p["minClipTime"] = 2000 },
			wantKind: InvalidNumericRange,
			wantMsg:  "min_clip_duration_secs",
		},
		{
			name: "Device error wins over transcriber error",
			modify: func(p Params) {
				p["computeDevice"] = "cuda:x"
				p["languageCode"] = "zz"
			},
			wantKind: InvalidDeviceSyntax,
			wantMsg:  "cuda:x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validRequestData()
			tt.modify(data)

			err := validator.CheckValidRequestData(data)
			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("CheckValidRequestData() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("CheckValidRequestData() error = nil, want %s", tt.wantKind)
			}
			if kind, _ := ErrorKindOf(err); kind != tt.wantKind {
				t.Errorf("CheckValidRequestData() kind = %s, want %s (%v)", kind, tt.wantKind, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("CheckValidRequestData() error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCheckValidRequestData_PropagatesDeviceErrorVerbatim(t *testing.T) {
	data := validRequestData()
	data["computeDevice"] = "gpu"

	got := TranscribeClipRequestValidator{}.CheckValidRequestData(data)
	want := CheckValidTorchDevice("gpu")
	if got == nil || got.Error() != want.Error() {
		t.Errorf("CheckValidRequestData() error = %v, want %v", got, want)
	}
}

func TestImputeRequestDataDefaults(t *testing.T) {
	data := TranscribeClipRequestValidator{}.ImputeRequestDataDefaults(Params{"mediaFilePath": "a.mp4"})

	if data["languageCode"] != "en" {
		t.Errorf("languageCode = %v, want en", data["languageCode"])
	}
	if data["minClipTime"] != 15 {
		t.Errorf("minClipTime = %v, want 15", data["minClipTime"])
	}
	if data["maxClipTime"] != 900 {
		t.Errorf("maxClipTime = %v, want 900", data["maxClipTime"])
	}
	for _, key := range []string{"computeDevice", "precision", "whisperModelSize"} {
		value, ok := data[key]
		if !ok || value != nil {
			t.Errorf("%s = %v (present %v), want explicit nil", key, value, ok)
		}
	}
	if len(data) != 11 {
		t.Errorf("len(data) = %d, want 11", len(data))
	}

	if err := (TranscribeClipRequestValidator{}).CheckValidRequestData(data); err != nil {
		t.Errorf("CheckValidRequestData() on defaults error = %v", err)
	}
}

func TestImputeRequestDataDefaults_KeepsExplicitNull(t *testing.T) {
	data := Params{"languageCode": nil}
	TranscribeClipRequestValidator{}.ImputeRequestDataDefaults(data)

	if value, ok := data["languageCode"]; !ok || value != nil {
		t.Errorf("languageCode = %v, want explicit nil kept", value)
	}
}

func TestTranscribeClipRequestValidatorParse(t *testing.T) {
	req, err := TranscribeClipRequestValidator{}.Parse(Params{
		"mediaFilePath":    "a.mp3",
		"languageCode":     "de",
		"whisperModelSize": "medium",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if req.Transcriber.Language != "de" {
		t.Errorf("Language = %s, want de", req.Transcriber.Language)
	}
	if req.Transcriber.ModelSize == nil || *req.Transcriber.ModelSize != "medium" {
		t.Errorf("ModelSize = %v, want medium", req.Transcriber.ModelSize)
	}
	if req.Transcriber.Precision != nil {
		t.Errorf("Precision = %v, want nil", *req.Transcriber.Precision)
	}
	if req.ComputeDevice != nil {
		t.Errorf("ComputeDevice = %v, want nil", *req.ComputeDevice)
	}
	if req.TextTile.MinClipDurationSecs != 15 || req.TextTile.MaxClipDurationSecs != 900 {
		t.Errorf("clip durations = %v..%v, want 15..900", req.TextTile.MinClipDurationSecs, req.TextTile.MaxClipDurationSecs)
	}
}
