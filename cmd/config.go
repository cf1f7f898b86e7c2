package cmd

import (
	"path/filepath"

	"github.com/jsphweid/melodygen/constants"
	"github.com/jsphweid/melodygen/db"
	"github.com/jsphweid/melodygen/logger"
	"github.com/jsphweid/melodygen/studio"
	"go.uber.org/zap"
)

type settings struct {
	baseDir    string
	searchDirs []string
	outputPath string
}

// loadSettings resolves flags over env vars over defaults.
func loadSettings() (settings, error) {
	var s settings
	var err error
	if baseDir != "" {
		s.baseDir, err = filepath.Abs(baseDir)
	} else {
		s.baseDir, err = constants.GetBaseDir()
	}
	if err != nil {
		return s, err
	}

	s.searchDirs = constants.GetSearchDirs(s.baseDir)
	s.outputPath = outPath
	if s.outputPath == "" {
		s.outputPath = constants.GetOutputPath(s.baseDir)
	}
	return s, nil
}

func newLogger() *zap.Logger {
	return logger.MustLogger(logger.WithLevel(logLevel))
}

// newCatalog returns nil when no endpoint is configured.
func newCatalog(log *zap.Logger) db.Catalog {
	endpoint := constants.GetCatalogEndpoint()
	if endpoint == "" {
		return nil
	}
	c, err := db.NewDynamoCatalog(endpoint, constants.GetCatalogTable())
	if err != nil {
		log.Warn("song metadata disabled", zap.Error(err))
		return nil
	}
	return c
}

func newStudio(log *zap.Logger) (*studio.Studio, settings, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, s, err
	}
	return studio.New(studio.Options{
		SearchDirs: s.searchDirs,
		OutputPath: s.outputPath,
		Length:     length,
		Seed:       seed,
		Catalog:    newCatalog(log),
		Logger:     log,
	}), s, nil
}
