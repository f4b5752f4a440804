package validation

import "strings"

// torchDeviceTypes lists the device type names torch accepts in a device
// string.
var torchDeviceTypes = map[string]struct{}{
	"cpu":           {},
	"cuda":          {},
	"mps":           {},
	"xpu":           {},
	"xla":           {},
	"hip":           {},
	"meta":          {},
	"hpu":           {},
	"ipu":           {},
	"mtia":          {},
	"maia":          {},
	"vulkan":        {},
	"mkldnn":        {},
	"opengl":        {},
	"opencl":        {},
	"ideep":         {},
	"ve":            {},
	"fpga":          {},
	"lazy":          {},
	"privateuseone": {},
}

// CheckValidTorchDevice checks that device is a syntactically valid torch
// device string: "<type>" or "<type>:<index>". It does not check whether the
// device is present on this host.
func CheckValidTorchDevice(device string) error {
	const field = "computeDevice"

	if device == "" {
		return newError(InvalidDeviceSyntax, field,
			"computeDevice must not be empty, use 'cpu' or '<device>[:<index>]' such as 'cuda:0'")
	}

	name, index, hasIndex := strings.Cut(device, ":")
	if _, ok := torchDeviceTypes[name]; !ok {
		return newError(InvalidDeviceSyntax, field,
			"computeDevice '%s' has unknown device type '%s', expected 'cpu' or an accelerator such as 'cuda' or 'mps'",
			device, name)
	}

	if hasIndex && !isDeviceIndex(index) {
		return newError(InvalidDeviceSyntax, field,
			"computeDevice '%s' has invalid device index '%s', expected a non-negative integer",
			device, index)
	}

	return nil
}

func isDeviceIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
