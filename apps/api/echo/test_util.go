package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/bizdesk/backoffice/core"
	"github.com/bizdesk/backoffice/core/billing"
	"github.com/bizdesk/backoffice/core/catalog"
	exportsvc "github.com/bizdesk/backoffice/services/export"
	inmemdb "github.com/bizdesk/backoffice/storage/database/inmem"
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func testConf() *core.Config {
	return &core.Config{
		AppName: "Bizdesk",
		Billing: core.BillingConfig{InvoicePrefix: "INV", TaxBasis: "pre_discount", Currency: "INR"},
	}
}

func initApp(t *testing.T) (*echo.Echo, catalog.Service, billing.Service) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("initApp() failed: %v", err)
	}
	conf := testConf()
	catSvc := catalog.NewService(inmemdb.NewCatalogRepository(db))
	export := exportsvc.NewAdapter(conf)
	billSvc, err := billing.NewService(conf, inmemdb.NewInvoiceRepository(db), catSvc, nil, export)
	if err != nil {
		t.Fatalf("initApp() failed: %v", err)
	}

	app := echo.New()
	app.Pre(middleware.RemoveTrailingSlash())
	app.HTTPErrorHandler = newAppHTTPErrorHandler(nopLogger{}, func() {})
	v1 := app.Group("/v1")
	registerCatalogAPI(v1, catSvc)
	registerBillingAPI(v1, billSvc, export)
	return app, catSvc, billSvc
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
