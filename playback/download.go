package playback

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/jsphweid/melodygen/constants"
)

// ServeDownload sends the encoded file as an attachment.
func ServeDownload(w http.ResponseWriter, r *http.Request, path string) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		http.Error(w, "Nothing has been generated yet", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Could not open generated file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "Could not open generated file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", constants.MidiMimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.OutputFileName))
	http.ServeContent(w, r, constants.OutputFileName, info.ModTime(), f)
}
