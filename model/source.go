package model

import "fmt"

type MidiMetadata struct {
	Title   string
	Artist  string
	Release string
	Year    uint
}

// SourceFile is a song found on disk. It only ever labels a generation run.
type SourceFile struct {
	Name     string
	Metadata *MidiMetadata
}

func (s SourceFile) Label() string {
	if s.Metadata == nil || s.Metadata.Title == "" {
		return s.Name
	}
	if s.Metadata.Artist == "" {
		return fmt.Sprintf("%v (%v)", s.Metadata.Title, s.Name)
	}
	return fmt.Sprintf("%v - %v (%v)", s.Metadata.Artist, s.Metadata.Title, s.Name)
}
