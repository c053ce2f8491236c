package telegram

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// InputFile is a file passed to the Bot API: an id of a file already on
// Telegram's servers, an HTTP URL for Telegram to fetch, or local content to
// upload as multipart/form-data.
//
// Only ids and URLs survive encoding. An upload is encoded as attach://<name>
// and decodes to an InputFile holding just that Name, without its content.
// A string starting with http:// or https:// always decodes as a URL.
type InputFile struct {
	FileID string
	URL    string
	Path   string
	Name   string
	Data   []byte
}

func FileID(id string) InputFile     { return InputFile{FileID: id} }
func FileURL(url string) InputFile   { return InputFile{URL: url} }
func FilePath(path string) InputFile { return InputFile{Path: path, Name: filepath.Base(path)} }
func FileBytes(name string, data []byte) InputFile {
	return InputFile{Name: name, Data: data}
}

// NeedsUpload reports whether the request carrying f must be sent as
// multipart/form-data.
func (f InputFile) NeedsUpload() bool {
	return f.Path != "" || f.Data != nil
}

const attachPrefix = "attach://"

func (f InputFile) MarshalJSON() ([]byte, error) {
	switch {
	case f.NeedsUpload():
		return json.Marshal(attachPrefix + f.Name)
	case f.URL != "":
		return json.Marshal(f.URL)
	default:
		return json.Marshal(f.FileID)
	}
}

func (f *InputFile) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch {
	case strings.HasPrefix(s, attachPrefix):
		*f = InputFile{Name: strings.TrimPrefix(s, attachPrefix)}
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		*f = InputFile{URL: s}
	default:
		*f = InputFile{FileID: s}
	}
	return nil
}

// multipartRequest is implemented by requests that may carry uploads, keyed
// by parameter name.
type multipartRequest interface {
	files() map[string]InputFile
}
