package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase/core"

	"lvestimate/services"
)

// maxUploadMemory bounds the multipart form kept in memory; larger parts
// spill to temporary files.
const maxUploadMemory = 32 << 20

// HandleAddAttachments records the name and size of every uploaded file in
// the "files" field. File contents are not kept.
func HandleAddAttachments(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxUploadMemory); err != nil {
			log.Printf("add_attachments: failed to parse upload: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid upload")
		}
		defer e.Request.MultipartForm.RemoveAll()

		headers := e.Request.MultipartForm.File["files"]
		if len(headers) == 0 {
			return ErrorToast(e, http.StatusBadRequest, "No files selected")
		}

		files := make([]services.Attachment, 0, len(headers))
		for _, fh := range headers {
			files = append(files, services.Attachment{Name: fh.Filename, Size: fh.Size})
		}
		return respondEstimate(e, ws, ws.Estimates.AddAttachments(files))
	}
}

func HandleRemoveAttachment(ws *services.Workspace) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid attachment index")
		}
		return respondEstimate(e, ws, ws.Estimates.RemoveAttachment(index))
	}
}
