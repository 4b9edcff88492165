package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"go-aware/predict"
)

func postJSON(t *testing.T, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestPredictRejectsMissingParameter(t *testing.T) {
	// TotalColiform omitted; the request must 422 before any upstream call.
	w, c := postJSON(t, `{"Temp":25,"DO":6,"pH":7,"Conductivity":100,"BOD":2,"Nitrate":0.4,"FecalColiform":100}`)

	Predict(c, predict.NewClient("http://127.0.0.1:1"))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if detail, _ := resp["detail"].(string); detail == "" {
		t.Error("422 response missing detail field")
	}
}

func TestPredictAllowsZeroValues(t *testing.T) {
	// A literal 0 is a valid reading, not a missing parameter. The unreachable
	// upstream turns into a 502, never a validation failure.
	w, c := postJSON(t, `{"Temp":25,"DO":6,"pH":7,"Conductivity":100,"BOD":2,"Nitrate":0,"FecalColiform":0,"TotalColiform":900}`)

	Predict(c, predict.NewClient("http://127.0.0.1:1"))

	if w.Code == http.StatusUnprocessableEntity {
		t.Fatalf("zero-valued parameters rejected as missing: %s", w.Body.String())
	}
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 from unreachable model service", w.Code)
	}
}

func TestRootReportsModelServiceStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	for _, tc := range []struct {
		name string
		url  string
		want bool
	}{
		{"reachable", srv.URL, true},
		{"unreachable", "http://127.0.0.1:1", false},
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		Root(c, predict.NewClient(tc.url))

		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", tc.name, w.Code)
		}
		var resp map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: response not JSON: %v", tc.name, err)
		}
		if got, _ := resp["model_service"].(bool); got != tc.want {
			t.Errorf("%s: model_service = %v, want %v", tc.name, got, tc.want)
		}
	}
}
