package generate_excel

import (
	"log/slog"
	"net/http"
	"net/url"

	"hat-costing/http-server/response"
	"hat-costing/internal/session"
)

type ExcelExporter interface {
	Export(st *session.State) ([]byte, error)
	FileNames() (name, ascii string)
}

// GenerateReportExcel downloads every saved scrap of the session as xlsx.
// A failed export answers 500 with a message and no file; the list stays as it was.
func GenerateReportExcel(log *slog.Logger, gen ExcelExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GenerateReportExcel"

		st, ok := response.State(w, r, log, op)
		if !ok {
			return
		}

		excelBytes, err := gen.Export(st)
		if err != nil {
			log.Error("failed to generate excel", "op", op, "err", err)
			response.Error(w, r, http.StatusInternalServerError, "엑셀 파일 생성에 실패했습니다.")
			return
		}

		// ФОРМИРУЕМ ОТВЕТ
		fileName, asciiName := gen.FileNames()

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+asciiName+`"; filename*=UTF-8''`+url.PathEscape(fileName))
		w.Write(excelBytes)
	}
}
