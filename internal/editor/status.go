package editor

import "path/filepath"

// Status is the header bar content for one frame.
type Status struct {
	Name    string
	Dirty   bool
	Message string
}

// Left returns the left-aligned portion of the header.
func (s Status) Left() string {
	if s.Dirty {
		return " " + s.Name + " [+]"
	}
	return " " + s.Name
}

// Right returns the right-aligned portion of the header.
func (s Status) Right() string {
	if s.Message == "" {
		return ""
	}
	return s.Message + " "
}

// DisplayName shortens a file path to parent/basename. An empty path is
// shown as fallback.
func DisplayName(filename, fallback string) string {
	if filename == "" {
		return fallback
	}
	dir := filepath.Base(filepath.Dir(filename))
	base := filepath.Base(filename)
	if dir == "." || dir == "/" {
		return base
	}
	return dir + "/" + base
}
