package constants

import (
	"os"
	"path/filepath"
)

const MidiExtension = ".mid"

const SongsDirName = "midi song"

const OutputFileName = "generated_music.mid"

const MidiMimeType = "audio/midi"

const DefaultMelodyLength = 24

// 960 is what most DAWs write, so durations survive a re-save untouched
const TicksPerQuarter = 960

const DefaultTempoBPM = 120

const DefaultVelocity = 90

const DefaultAddr = ":8080"

const DefaultCatalogTable = "melodygen-metadata"

// players are inlined as data URIs, anything larger is offered as download only
const MaxEmbedBytes = 1 << 20

func GetBaseDir() (string, error) {
	path := os.Getenv("MELODY_BASE_DIR")
	if path != "" {
		return filepath.Abs(path)
	}
	return os.Getwd()
}

// GetSearchDirs returns the directories scanned for source songs, in scan order.
func GetSearchDirs(baseDir string) []string {
	return []string{filepath.Join(baseDir, SongsDirName), baseDir}
}

func GetOutputPath(baseDir string) string {
	path := os.Getenv("MELODY_OUTPUT_PATH")
	if path != "" {
		return path
	}
	return filepath.Join(baseDir, OutputFileName)
}

func GetAddr() string {
	addr := os.Getenv("MELODY_ADDR")
	if addr != "" {
		return addr
	}
	return DefaultAddr
}

// GetCatalogEndpoint returns "" when no metadata catalog is configured.
func GetCatalogEndpoint() string {
	return os.Getenv("MELODY_CATALOG_ENDPOINT")
}

func GetCatalogTable() string {
	table := os.Getenv("MELODY_CATALOG_TABLE")
	if table != "" {
		return table
	}
	return DefaultCatalogTable
}
