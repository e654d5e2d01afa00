package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hat-costing/internal/session"
	"hat-costing/internal/storage"
)

type MockExcelExporter struct {
	mock.Mock
}

func (m *MockExcelExporter) Export(st *session.State) ([]byte, error) {
	args := m.Called(st)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExcelExporter) FileNames() (string, string) {
	args := m.Called()
	return args.String(0), args.String(1)
}

func request(st *session.State) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/report/excel", nil)
	return req.WithContext(session.WithState(context.Background(), st))
}

func TestGenerateReportExcel_Success(t *testing.T) {
	gen := new(MockExcelExporter)
	st := session.NewState("s1")

	gen.On("Export", st).Return([]byte("PK-xlsx"), nil)
	gen.On("FileNames").Return("원가계산서_20261019_1542.xlsx", "costing_20261019_1542.xlsx")

	rr := httptest.NewRecorder()
	GenerateReportExcel(slog.Default(), gen).ServeHTTP(rr, request(st))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "filename*=UTF-8''%EC%9B%90")
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="costing_20261019_1542.xlsx"`)
	assert.Equal(t, "PK-xlsx", rr.Body.String())

	gen.AssertExpectations(t)
}

func TestGenerateReportExcel_Failure(t *testing.T) {
	gen := new(MockExcelExporter)
	st := session.NewState("s1")

	gen.On("Export", st).Return(nil, fmt.Errorf("wrap: %w", storage.ErrExportFailure))

	rr := httptest.NewRecorder()
	GenerateReportExcel(slog.Default(), gen).ServeHTTP(rr, request(st))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "엑셀 파일 생성에 실패했습니다.")
	gen.AssertNotCalled(t, "FileNames")
}
