// Package server exposes the launch sheet filler over HTTP: both workbooks
// are uploaded in one multipart request and the filled workbook is returned
// as a download.
package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/ukaji3/launchfill-go/pkg/launchfill"
	"github.com/ukaji3/launchfill-go/pkg/launchfill/models"
	"go.uber.org/zap"
)

// XLSXContentType is the MIME type of the returned workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const maxUploadSize = 32 << 20

// NewHandler returns the HTTP routes for the filler.
func NewHandler(opts launchfill.Options, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fill", fillHandler(opts, logger))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func fillHandler(opts launchfill.Options, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			http.Error(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
			return
		}

		stock, stockHeader, err := r.FormFile("stock")
		if err != nil {
			http.Error(w, "Stock file is required (form field \"stock\")", http.StatusBadRequest)
			return
		}
		defer stock.Close()

		launch, launchHeader, err := r.FormFile("launch")
		if err != nil {
			http.Error(w, "Launch file is required (form field \"launch\")", http.StatusBadRequest)
			return
		}
		defer launch.Close()

		runOpts := opts
		runOpts.Logger = logger
		var buf bytes.Buffer
		report, err := launchfill.FillReader(stock, launch, &buf, runOpts)
		if err != nil {
			logger.Error("fill failed", zap.Error(err))
			status := http.StatusUnprocessableEntity
			if errors.Is(err, launchfill.ErrInvalidLayout) {
				status = http.StatusInternalServerError
			}
			http.Error(w, "An error occurred: "+err.Error(), status)
			return
		}

		report.StockFile = filepath.Base(stockHeader.Filename)
		report.LaunchFile = filepath.Base(launchHeader.Filename)

		filename := opts.Layout.OutputName
		w.Header().Set("Content-Type", XLSXContentType)
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		setReportHeaders(w.Header(), report)
		if _, err := w.Write(buf.Bytes()); err != nil {
			logger.Warn("writing response failed", zap.Error(err))
			return
		}
		logger.Info("filled launch sheet served",
			zap.Int("total", report.Total),
			zap.Int("bytes", buf.Len()))
	}
}

func setReportHeaders(h http.Header, report *models.Report) {
	h.Set("X-Launchfill-Stock-File", url.PathEscape(report.StockFile))
	h.Set("X-Launchfill-Launch-File", url.PathEscape(report.LaunchFile))
	h.Set("X-Launchfill-Total", strconv.Itoa(report.Total))
	h.Set("X-Launchfill-Found", strconv.Itoa(report.Count(models.StatusFound)))
	h.Set("X-Launchfill-Substituted", strconv.Itoa(report.Count(models.StatusSubstituted)))
	h.Set("X-Launchfill-Not-Found", strconv.Itoa(report.Count(models.StatusNotFound)))
	h.Set("X-Launchfill-No-Alternative", strconv.Itoa(report.Count(models.StatusNoAlternative)))
}
