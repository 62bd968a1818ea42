package config

// DefaultProfile returns a new Profile populated with this tool's built-in
// defaults. This profile is used as the base when no fast-yaml.toml is
// present or when a named profile omits fields.
//
// Callers receive a fresh copy each time; mutating the returned value does
// not affect subsequent calls.
func DefaultProfile() *Profile {
	useColor := true
	respectIgnoreFiles := true

	return &Profile{
		Include:            []string{"*.yml", "*.yaml"},
		IndentWidth:        2,
		MmapThreshold:      "512KiB",
		RespectIgnoreFiles: &respectIgnoreFiles,
		UseColor:           &useColor,
	}
}
