package constants

// SourceType records how a receipt entered the system.
type SourceType string

// Stable values (store these exact strings in DB).
const (
	SourceManual SourceType = "MANUAL" // typed in through the entry workflow
	SourceOCR    SourceType = "OCR"    // created from an uploaded file
)

var allSourceTypes = []SourceType{SourceManual, SourceOCR}

func SourceTypes() []string {
	result := make([]string, len(allSourceTypes))
	for i, s := range allSourceTypes {
		result[i] = string(s)
	}
	return result
}

func IsSourceType(s string) bool {
	for _, st := range allSourceTypes {
		if s == string(st) {
			return true
		}
	}
	return false
}
