// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionBackend identifies the tool that performs PDF/DOCX conversion.
type ConversionBackend string

const (
	BackendSoffice   ConversionBackend = "soffice"
	BackendContainer ConversionBackend = "container"
)

// SofficeConfig holds settings for the LibreOffice headless backend.
type SofficeConfig struct {
	// Path is the soffice binary name or absolute path.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// ContainerConfig holds the images used by the container backend.
type ContainerConfig struct {
	// Pdf2DocxImage reads a PDF on stdin and writes DOCX on stdout.
	Pdf2DocxImage string `json:"pdf2docx_image" yaml:"pdf2docx_image" mapstructure:"pdf2docx_image"`

	// Docx2PdfImage reads a DOCX on stdin and writes PDF on stdout.
	Docx2PdfImage string `json:"docx2pdf_image" yaml:"docx2pdf_image" mapstructure:"docx2pdf_image"`
}

// ConversionConfig holds settings for the PDF/DOCX converters.
type ConversionConfig struct {
	// Backend selects soffice or container.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Preflight opens PDFs before conversion to reject unreadable input early.
	Preflight bool `json:"preflight" yaml:"preflight" mapstructure:"preflight"`

	Soffice   SofficeConfig   `json:"soffice" yaml:"soffice" mapstructure:"soffice"`
	Container ContainerConfig `json:"container" yaml:"container" mapstructure:"container"`
}

// CompressionConfig holds settings for image recompression.
type CompressionConfig struct {
	// Quality is the JPEG quality passed to the encoder (default 75).
	Quality int `json:"quality" yaml:"quality" mapstructure:"quality"`

	// MaxWidth downsizes wider images when > 0. Zero keeps the original size.
	MaxWidth int `json:"max_width" yaml:"max_width" mapstructure:"max_width"`
}

// JournalConfig holds settings for the operation history database.
type JournalConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all settings loaded from the config file, environment
// and flags.
type Config struct {
	Conversion  ConversionConfig  `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Compression CompressionConfig `json:"compression" yaml:"compression" mapstructure:"compression"`
	Journal     JournalConfig     `json:"journal" yaml:"journal" mapstructure:"journal"`

	// KeepGoing continues batch operations past per-file failures.
	KeepGoing bool `json:"keep_going" yaml:"keep_going" mapstructure:"keep_going"`
}
