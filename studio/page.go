package studio

import (
	"encoding/base64"
	"html/template"
	"io"

	"github.com/jsphweid/melodygen/model"
)

const playbackWarning = "Your browser may not support direct MIDI playback, but you can download it below."

const noInputWarning = "No MIDI files found! Please add some .mid files and refresh the app."

type generatedView struct {
	RunID           string
	Source          string
	PlotSrc         template.URL
	PlotWarning     string
	PlayerSrc       template.URL
	PlaybackWarning string
	DownloadURL     string
}

type pageView struct {
	NoInput        bool
	NoInputWarning string
	Files          []model.SourceFile
	Selected       string
	Error          string
	Generated      *generatedView
}

func newGeneratedView(res Result) *generatedView {
	v := &generatedView{
		RunID:       res.RunID,
		Source:      res.Source,
		DownloadURL: downloadURL(res.RunID),
	}
	if res.PlotErr != nil {
		v.PlotWarning = "Could not draw the melody: " + res.PlotErr.Error()
	} else {
		// both sources are built here from bytes we produced, never from input
		v.PlotSrc = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(res.PlotPNG))
	}
	if res.Embed.OK() {
		v.PlayerSrc = template.URL(res.Embed.Src)
	} else {
		v.PlaybackWarning = playbackWarning
	}
	return v
}

func downloadURL(runID string) string {
	return "/download?run=" + runID
}

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AI Music Generation</title>
<style>
body { background-color: #fdfdfd; font-family: sans-serif; max-width: 760px; margin: 0 auto; padding: 24px; }
.title { text-align: center; font-size: 40px; font-weight: 700; color: #2c3e50;
  background: linear-gradient(45deg, #ff5f6d, #ffc371); -webkit-background-clip: text; background-clip: text; -webkit-text-fill-color: transparent; }
.subtitle { text-align: center; color: #555; font-size: 18px; margin-bottom: 30px; }
.footer { text-align: center; color: #888; font-size: 14px; margin-top: 40px; }
.success { background: #e8f7ee; color: #1e7b43; padding: 10px 14px; border-radius: 8px; }
.warning { background: #fff7e0; color: #8a6100; padding: 10px 14px; border-radius: 8px; }
.error { background: #fdecea; color: #a12622; padding: 10px 14px; border-radius: 8px; }
button, .download { background-color: #ff5f6d; color: white; border-radius: 12px; border: none;
  font-size: 16px; font-weight: 600; padding: 10px 24px; cursor: pointer; text-decoration: none; display: inline-block; }
button:hover, .download:hover { background-color: #ff7f50; transform: scale(1.03); }
.download { display: block; text-align: center; margin-top: 16px; }
img.plot { width: 100%; }
</style>
<script src="https://cdn.jsdelivr.net/combine/npm/tone@14.7.58,npm/@magenta/music@1.23.1/es6/core.js,npm/focus-visible@5,npm/html-midi-player@1.5.0"></script>
</head>
<body>
<p class="title">AI Music Generation Studio</p>
<p class="subtitle">Generate melodies, visualize notes &amp; listen instantly!</p>
<hr>
{{if .NoInput}}
<p class="warning" id="no-input">{{.NoInputWarning}}</p>
{{else}}
<p class="success" id="found">Found {{len .Files}} MIDI files!</p>
<form method="post" action="/generate">
<label for="source">Select a MIDI song to inspire new music:</label>
<select id="source" name="source">
{{range .Files}}<option value="{{.Name}}"{{if eq .Name $.Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>
<button type="submit">Generate New Music</button>
</form>
{{if .Error}}<p class="error" id="error">{{.Error}}</p>{{end}}
{{with .Generated}}
<p>Generating melody inspired by: <strong>{{.Source}}</strong></p>
<p class="success" id="generated">Music generated successfully! Now you can visualize &amp; listen to it below:</p>
{{if .PlotSrc}}<img class="plot" id="plot" alt="Melody Visualization" src="{{.PlotSrc}}">{{end}}
{{if .PlotWarning}}<p class="warning" id="plot-warning">{{.PlotWarning}}</p>{{end}}
{{if .PlayerSrc}}<midi-player id="player" src="{{.PlayerSrc}}" sound-font></midi-player>{{end}}
{{if .PlaybackWarning}}<p class="warning" id="playback-warning">{{.PlaybackWarning}}</p>{{end}}
<a class="download" id="download" href="{{.DownloadURL}}" download="generated_music.mid" type="audio/midi">Download Generated MIDI File</a>
{{end}}
{{end}}
<hr>
<p class="footer">Powered by Go</p>
</body>
</html>
`))

func renderPage(w io.Writer, v pageView) error {
	v.NoInputWarning = noInputWarning
	return page.Execute(w, v)
}
