package file

import (
	"encoding/base64"
	"fmt"

	"github.com/Cyclone1070/workbench/internal/config"
)

// Content encodings. Text content travels as-is; anything that is not valid
// UTF-8 travels as standard base64 so JSON transport cannot alter it.
const (
	EncodingText   = "utf-8"
	EncodingBase64 = "base64"
)

// -- Read File --

type ReadFileRequest struct {
	Path string `json:"path" mapstructure:"path"`
}

func (r *ReadFileRequest) Validate(cfg *config.Config) error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

// ReadFileResponse reports Exists=false with empty Content when nothing is at Path.
// Encoding says how Content is encoded; Size is the raw file size in bytes.
type ReadFileResponse struct {
	Exists       bool   `json:"exists"`
	Content      string `json:"content"`
	Encoding     string `json:"encoding,omitempty"`
	AbsolutePath string `json:"absolute_path"`
	RelativePath string `json:"relative_path"`
	Size         int64  `json:"size"`
}

// -- Write File --

// WriteFileRequest writes Content to Path, replacing any existing file.
// Empty Content is valid and produces an empty file.
// Encoding is EncodingText (the default when empty) or EncodingBase64.
type WriteFileRequest struct {
	Path     string `json:"path" mapstructure:"path"`
	Content  string `json:"content" mapstructure:"content"`
	Encoding string `json:"encoding,omitempty" mapstructure:"encoding"`
}

func (r *WriteFileRequest) Validate(cfg *config.Config) error {
	if r.Path == "" {
		return ErrPathRequired
	}
	data, err := r.bytes()
	if err != nil {
		return err
	}
	if int64(len(data)) > cfg.Tools.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// bytes returns the decoded file content.
func (r *WriteFileRequest) bytes() ([]byte, error) {
	switch r.Encoding {
	case "", EncodingText:
		return []byte(r.Content), nil
	case EncodingBase64:
		data, err := base64.StdEncoding.DecodeString(r.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, r.Encoding)
	}
}

type WriteFileResponse struct {
	AbsolutePath string `json:"absolute_path"`
	RelativePath string `json:"relative_path"`
	BytesWritten int    `json:"bytes_written"`
}
