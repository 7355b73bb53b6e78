package directory

// ListDirectoryRequest lists the files below Path ("." when empty).
type ListDirectoryRequest struct {
	Path           string `json:"path" mapstructure:"path"`
	ExcludeIgnored bool   `json:"exclude_ignored,omitempty" mapstructure:"exclude_ignored"`
}

// ListDirectoryResponse holds workspace-relative, slash-separated file paths in sorted order.
type ListDirectoryResponse struct {
	DirectoryPath string   `json:"directory_path"`
	Files         []string `json:"files"`
	Truncated     bool     `json:"truncated"`
}
