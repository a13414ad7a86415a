// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/officekit/internal/compress"
	"github.com/pdiddy/officekit/pkg/types"
)

const (
	defaultQuality       = compress.DefaultQuality
	defaultPdf2DocxImage = "officekit/pdf2docx:latest"
	defaultDocx2PdfImage = "officekit/docx2pdf:latest"
)

// flagKeys binds root flags to their config keys.
var flagKeys = map[string]string{
	"backend":    "conversion.backend",
	"quality":    "compression.quality",
	"keep-going": "keep_going",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("conversion.backend", string(types.BackendSoffice))
	v.SetDefault("conversion.preflight", true)
	v.SetDefault("conversion.soffice.path", "soffice")
	v.SetDefault("conversion.container.pdf2docx_image", defaultPdf2DocxImage)
	v.SetDefault("conversion.container.docx2pdf_image", defaultDocx2PdfImage)
	v.SetDefault("compression.quality", defaultQuality)
	v.SetDefault("compression.max_width", 0)
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", "")
	v.SetDefault("keep_going", false)
}

// loadConfig merges defaults, the config file, OFFICEKIT_* environment
// variables and root flags, in increasing priority.
func loadConfig(v *viper.Viper, cfgFile string, root *cobra.Command, logger *log.Logger) (types.Config, error) {
	var cfg types.Config
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("officekit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "officekit"))
		}
	}

	v.SetEnvPrefix("OFFICEKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else {
		logger.Debug("using config file", "path", v.ConfigFileUsed())
	}

	for name, key := range flagKeys {
		if f := root.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return cfg, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}
