package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"sptrans.olhovivo.dev/internal/utils"
	"sptrans.olhovivo.dev/olhovivo"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, status int, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// debugIndexHandler dumps decoded records from the upstream service.
func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	if webUI.RequestHasInvalidAPIKey(r) {
		writeDebugData(w, http.StatusUnauthorized, "Permission denied", map[string]string{"error": "invalid key"})
		return
	}

	query := r.URL.Query()
	ctx := r.Context()

	var data interface{}
	var title string
	var err error

	switch query.Get("dataType") {
	case "lanes":
		title = "Olho Vivo - Lanes"
		var lanes []olhovivo.Lane
		seq, fetchErr := webUI.Client.ListLanes(ctx)
		if err = fetchErr; err == nil {
			lanes, err = olhovivo.Collect(seq)
		}
		data = lanes
	case "positions":
		code, codeErr := utils.ValidateCode(query.Get("route"))
		if codeErr != nil {
			writeDebugData(w, http.StatusBadRequest, "Invalid route", map[string]string{"route": codeErr.Error()})
			return
		}
		title = "Olho Vivo - Positions"
		data, err = webUI.Client.GetPositions(ctx, code)
	case "schema":
		title = "Olho Vivo - Record descriptors"
		schema := webUI.Client.Schema()
		descriptors := make(map[string][]string)
		for _, name := range schema.Names() {
			if d, ok := schema.Lookup(name); ok {
				descriptors[name] = d.Keys()
			}
		}
		data = descriptors
	default:
		data = map[string]string{
			"error": "Please use one of the following: lanes, positions, schema.",
		}
		title = "Choose a data type"
	}

	if err != nil {
		writeDebugData(w, http.StatusBadGateway, "Upstream error", map[string]string{"error": err.Error()})
		return
	}

	writeDebugData(w, http.StatusOK, title, data)
}
