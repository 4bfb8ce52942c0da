package form

// File is a selected upload held in memory. It can never be persisted; only
// its Meta survives a page reload.
type File struct {
	Name      string
	Size      int64
	MediaType string
	Content   []byte
}

// FileMeta describes a file without carrying its content.
type FileMeta struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	MediaType string `json:"mediaType"`
}

// Meta returns the descriptive metadata of f, or nil for a nil file.
func (f *File) Meta() *FileMeta {
	if f == nil {
		return nil
	}
	return &FileMeta{Name: f.Name, Size: f.Size, MediaType: f.MediaType}
}
