// Package snapshot converts wizard form data to and from plain, storable data.
//
// The conversion is deliberately lossy: a selected resume is an in-memory
// handle that cannot be persisted, so it is stored as {name, size, mediaType}
// metadata and always decodes back to null. After a reload the user has to
// pick the file again.
package snapshot

import "github.com/justsurfingit/jobboard/internal/form"

// Record is the plain-data projection of form.Data. Text fields map to
// strings; form.FieldResume maps to *form.FileMeta or nil.
type Record map[string]any

// Body is the wizard state that survives a reload.
type Body struct {
	CurrentStep          int    `json:"currentStep"`
	HighestCompletedStep int    `json:"highestCompletedStep"`
	FormData             Record `json:"formData"`
}

// Encode returns data as a Record. Only the resume field is transformed.
func Encode(data form.Data) Record {
	record := make(Record, len(data.Values)+1)
	for field, value := range data.Values {
		record[field] = value
	}
	if meta := data.Resume.Meta(); meta != nil {
		record[form.FieldResume] = meta
	} else {
		record[form.FieldResume] = nil
	}
	return record
}

// Decode rebuilds form data from a Record. The resume is never reconstructed,
// whatever metadata the record carries. Values that are not strings are
// dropped.
func Decode(record Record) form.Data {
	data := form.Data{Values: make(map[string]string, len(record))}
	for field, value := range record {
		if field == form.FieldResume {
			continue
		}
		if s, ok := value.(string); ok {
			data.Values[field] = s
		}
	}
	return data
}
