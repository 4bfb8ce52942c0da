package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyHasEveryTextField(t *testing.T) {
	data := Empty()
	assert.Len(t, data.Values, len(TextFields()))
	for _, field := range TextFields() {
		value, ok := data.Values[field]
		assert.True(t, ok, field)
		assert.Empty(t, value, field)
	}
	assert.Nil(t, data.Resume)
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	data := Empty()
	next := data.With(FieldEmail, "ada@example.com")

	assert.Equal(t, "", data.Get(FieldEmail))
	assert.Equal(t, "ada@example.com", next.Get(FieldEmail))
}

func TestWithResume(t *testing.T) {
	file := &File{Name: "cv.pdf", Size: 3, MediaType: "application/pdf", Content: []byte("pdf")}

	data := Empty().With(FieldResume, file)
	assert.Same(t, file, data.Resume)

	cleared := data.With(FieldResume, nil)
	assert.Nil(t, cleared.Resume)
	assert.Same(t, file, data.Resume)

	// A non-file value clears the handle rather than storing garbage.
	assert.Nil(t, data.With(FieldResume, "cv.pdf").Resume)
}

func TestWithFormatsNonStrings(t *testing.T) {
	data := Empty().With(FieldYearsExperience, 7)
	assert.Equal(t, "7", data.Get(FieldYearsExperience))
	assert.Equal(t, "", data.With(FieldYearsExperience, nil).Get(FieldYearsExperience))
}

func TestCloneOfZeroValue(t *testing.T) {
	var data Data
	clone := data.Clone()
	assert.NotNil(t, clone.Values)
}

func TestLabelAndIsKnown(t *testing.T) {
	assert.True(t, IsKnown(FieldResume))
	assert.False(t, IsKnown("favouriteColour"))
	assert.Equal(t, "Password confirmation", Label(FieldConfirmPassword))
	assert.Equal(t, "favouriteColour", Label("favouriteColour"))
}

func TestFileMeta(t *testing.T) {
	var missing *File
	assert.Nil(t, missing.Meta())

	file := &File{Name: "cv.pdf", Size: 10, MediaType: "application/pdf", Content: make([]byte, 10)}
	assert.Equal(t, &FileMeta{Name: "cv.pdf", Size: 10, MediaType: "application/pdf"}, file.Meta())
}
