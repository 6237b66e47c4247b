package upload

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Saver writes uploaded files into the public upload directory under a
// timestamp-prefixed unique name and hands back the relative path they are
// served under.
type Saver struct {
	dir string
	now func() time.Time
}

func NewSaver(dir string) *Saver {
	return &Saver{dir: dir, now: time.Now}
}

// Save stores data under "<unix-millis>-<name>" and returns the public
// "/uploads/..." path the file is reachable at.
func (s *Saver) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	fileName := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + sanitize(name)
	if err := os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + fileName, nil
}

// sanitize strips any path components from a client-supplied filename.
func sanitize(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload"
	}
	return name
}
